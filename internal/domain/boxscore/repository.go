package boxscore

import "context"

// Repository describes boxscore persistence needs from use cases.
type Repository interface {
	GetByGamePlayer(ctx context.Context, gameID, playerID int64) (Boxscore, bool, error)
	// Upsert inserts the line or, on (game_id, player_id) conflict,
	// overwrites all numeric fields.
	Upsert(ctx context.Context, b Boxscore) error
}
