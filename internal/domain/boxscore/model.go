package boxscore

import "fmt"

// Boxscore is one player's line in one game. (GameID, PlayerID) is the
// composite identity; re-ingestion overwrites every numeric field rather
// than accumulating.
type Boxscore struct {
	GameID        int64
	PlayerID      int64
	MinutesPlayed float64
	Points        int
	TwoFGMade     int
	TwoFGTaken    int
	ThreeFGMade   int
	ThreeFGTaken  int
	FTMade        int
	FTTaken       int
	OffRebounds   int
	DefRebounds   int
	Assists       int
	Steals        int
	BlocksFavor   int
	BlocksAgainst int
	FoulsCommited int
	FoulsReceived int
	Efficiency    int
}

func (b Boxscore) Validate() error {
	if b.GameID == 0 {
		return fmt.Errorf("boxscore game id is required")
	}
	if b.PlayerID == 0 {
		return fmt.Errorf("boxscore player id is required")
	}
	if b.MinutesPlayed < 0 {
		return fmt.Errorf("boxscore minutes must not be negative")
	}

	return nil
}
