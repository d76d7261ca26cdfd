package game

import (
	"fmt"
	"time"
)

// Game is one fixture. (Date, HomeTeamID, AwayTeamID) is the natural key used
// to recognize an existing row on replay; scores stay mutable because
// provisional results get corrected over time.
type Game struct {
	ID         int64
	Date       time.Time
	HomeTeamID int64
	AwayTeamID int64
	HomeScore  int
	AwayScore  int
}

func (g Game) Validate() error {
	if g.Date.IsZero() {
		return fmt.Errorf("game date is required")
	}
	if g.HomeTeamID == 0 {
		return fmt.Errorf("game home team id is required")
	}
	if g.AwayTeamID == 0 {
		return fmt.Errorf("game away team id is required")
	}
	if g.HomeTeamID == g.AwayTeamID {
		return fmt.Errorf("game home and away team must differ")
	}

	return nil
}
