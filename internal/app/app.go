package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aurimasb/euroleague-stats/external/basketnews"
	"github.com/aurimasb/euroleague-stats/external/euroleague"
	"github.com/aurimasb/euroleague-stats/external/incrowd"
	"github.com/aurimasb/euroleague-stats/internal/config"
	"github.com/aurimasb/euroleague-stats/internal/infrastructure/repository/postgres"
	"github.com/aurimasb/euroleague-stats/internal/platform/logging"
	"github.com/aurimasb/euroleague-stats/internal/usecase"
)

// Application owns the service graph for one sync run.
type Application struct {
	Config config.Config
	Logger *logging.Logger
	DB     *sqlx.DB
	Sync   *usecase.SyncService
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(cfg.ServiceName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	codes := usecase.NewTeamCodeMapper(cfg.TeamCodeOverrides)
	httpClient := &http.Client{
		Timeout:   cfg.FeedTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	scheduleClient := incrowd.NewClient(incrowd.ClientConfig{
		HTTPClient:  httpClient,
		BaseURL:     cfg.InCrowdBaseURL,
		Competition: cfg.Competition,
		Season:      cfg.Season,
		Logger:      logger,
	})
	gameLogClient := euroleague.NewClient(euroleague.ClientConfig{
		HTTPClient: httpClient,
		BaseURL:    cfg.EuroleagueBase,
		BuildID:    cfg.EuroleagueBuild,
		MapAbbr:    codes.Map,
		Logger:     logger,
	})
	fantasyClient := basketnews.NewClient(basketnews.ClientConfig{
		HTTPClient: httpClient,
		BaseURL:    cfg.BasketNewsBaseURL,
		LeagueID:   cfg.BasketNewsLeagueID,
		Locale:     cfg.BasketNewsLocale,
		AuthToken:  cfg.BasketNewsToken,
		Logger:     logger,
	})

	syncSvc := usecase.NewSyncService(
		scheduleClient,
		gameLogClient,
		fantasyClient,
		postgres.NewTeamRepository(db),
		postgres.NewPlayerRepository(db),
		postgres.NewGameRepository(db),
		postgres.NewBoxscoreRepository(db),
		codes,
		usecase.SyncConfig{
			RoundCount:       cfg.RoundCount,
			MatchThreshold:   cfg.MatchThreshold,
			FantasyThreshold: cfg.FantasyThreshold,
		},
		logger,
	)

	return &Application{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Sync:   syncSvc,
	}, nil
}

func (a *Application) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
