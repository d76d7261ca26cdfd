package player

import "fmt"

// Player is a rostered athlete. Code is the provider-issued business key and
// is immutable once assigned; team and position follow the latest roster feed,
// the two price fields follow the fantasy feed only.
type Player struct {
	ID                 int64
	Code               string
	Name               string
	TeamID             int64
	Position           string
	FantasyPrice       float64
	FantasyPriceChange float64
}

func (p Player) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("player code is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.TeamID == 0 {
		return fmt.Errorf("player team id is required")
	}

	return nil
}

// WithTeam is one row of the Player⋈Team scan used to build matching indexes.
type WithTeam struct {
	Player
	TeamName         string
	TeamAbbreviation string
}
