package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrTeamNotResolved       = errors.New("team not resolved")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrNoStats               = errors.New("no stats available")
)
