package game

import (
	"context"
	"time"
)

// Repository describes game persistence needs from use cases.
type Repository interface {
	FindByDateTeams(ctx context.Context, date time.Time, homeTeamID, awayTeamID int64) (Game, bool, error)
	// FindByTeams resolves a fixture from the home/away pair alone, the way
	// boxscore ingestion addresses games when no date is in the payload.
	FindByTeams(ctx context.Context, homeTeamID, awayTeamID int64) (Game, bool, error)
	Insert(ctx context.Context, g Game) (Game, error)
	UpdateScore(ctx context.Context, gameID int64, homeScore, awayScore int) error
}
