package team

import "fmt"

// Team is a EuroLeague club. Abbreviation is the stable identity every
// reconciliation step joins on; the display name may change between runs.
type Team struct {
	ID           int64
	Name         string
	Abbreviation string
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Abbreviation == "" {
		return fmt.Errorf("team abbreviation is required")
	}

	return nil
}
