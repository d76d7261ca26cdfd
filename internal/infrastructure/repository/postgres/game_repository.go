package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aurimasb/euroleague-stats/internal/domain/game"
	qb "github.com/aurimasb/euroleague-stats/internal/platform/querybuilder"
)

type gameTableModel struct {
	ID         int64     `db:"game_id"`
	Date       time.Time `db:"game_date"`
	HomeTeamID int64     `db:"home_team"`
	AwayTeamID int64     `db:"away_team"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
}

type gameInsertModel struct {
	Date       time.Time `db:"game_date"`
	HomeTeamID int64     `db:"home_team"`
	AwayTeamID int64     `db:"away_team"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:         m.ID,
		Date:       m.Date,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
	}
}

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) FindByDateTeams(ctx context.Context, date time.Time, homeTeamID, awayTeamID int64) (game.Game, bool, error) {
	return r.getOne(ctx,
		qb.Eq("game_date", date),
		qb.Eq("home_team", homeTeamID),
		qb.Eq("away_team", awayTeamID),
	)
}

func (r *GameRepository) FindByTeams(ctx context.Context, homeTeamID, awayTeamID int64) (game.Game, bool, error) {
	return r.getOne(ctx,
		qb.Eq("home_team", homeTeamID),
		qb.Eq("away_team", awayTeamID),
	)
}

func (r *GameRepository) getOne(ctx context.Context, conds ...qb.Condition) (game.Game, bool, error) {
	query, args, err := qb.Select("game_id", "game_date", "home_team", "away_team", "home_score", "away_score").
		From("games").
		Where(conds...).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *GameRepository) Insert(ctx context.Context, g game.Game) (game.Game, error) {
	query, args, err := qb.InsertModel(
		"games",
		gameInsertModel{
			Date:       g.Date,
			HomeTeamID: g.HomeTeamID,
			AwayTeamID: g.AwayTeamID,
			HomeScore:  g.HomeScore,
			AwayScore:  g.AwayScore,
		},
		"RETURNING game_id, game_date, home_team, away_team, home_score, away_score",
	)
	if err != nil {
		return game.Game{}, fmt.Errorf("build insert game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return game.Game{}, fmt.Errorf("insert game: %w", err)
	}

	return row.toDomain(), nil
}

func (r *GameRepository) UpdateScore(ctx context.Context, gameID int64, homeScore, awayScore int) error {
	query, args, err := qb.Update("games").
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game score query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update game score game_id=%d: %w", gameID, err)
	}

	return nil
}
