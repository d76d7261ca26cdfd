package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByCode(ctx context.Context, code string) (Player, bool, error)
	ListWithTeams(ctx context.Context) ([]WithTeam, error)
	// Upsert inserts the player or, on code conflict, updates team and
	// position only. The price fields are never written here.
	Upsert(ctx context.Context, p Player) (Player, error)
	UpdateFantasyPrice(ctx context.Context, playerID int64, price, priceChange float64) error
}
