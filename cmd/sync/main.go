package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aurimasb/euroleague-stats/internal/app"
	"github.com/aurimasb/euroleague-stats/internal/config"
	"github.com/aurimasb/euroleague-stats/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("sync run starting", "season", cfg.Season, "rounds", cfg.RoundCount)
	summary, err := application.Sync.Run(ctx)
	if err != nil {
		logger.Error("sync run failed", "error", err)
		_ = application.Close()
		os.Exit(1)
	}

	logger.Info("all statistics updated",
		"teams", summary.Teams,
		"games_inserted", summary.Games.Inserted,
		"games_updated", summary.Games.Updated,
		"players", summary.Players.Synced,
		"boxscores", summary.Players.Boxscores,
		"fantasy_matched", summary.Fantasy.Matched,
		"fantasy_unmatched", len(summary.Fantasy.Unmatched),
	)
}
