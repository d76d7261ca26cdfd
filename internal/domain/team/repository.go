package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByName(ctx context.Context, name string) (Team, bool, error)
	GetByAbbreviation(ctx context.Context, abbreviation string) (Team, bool, error)
	// Upsert inserts the team or, on abbreviation conflict, updates the name.
	// The returned row carries the surrogate id either way.
	Upsert(ctx context.Context, t Team) (Team, error)
}
