package euroleague

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aurimasb/euroleague-stats/internal/usecase"
)

// Stat section order in the provider's season table. The layout is positional:
// a schema change on the provider side only ever touches this file.
const (
	sectionShooting   = 0 // minutes, points, 2FG, 3FG, free throws
	sectionRebounds   = 1 // offensive, defensive, total
	sectionPlaymaking = 2 // assists, steals, turnovers
	sectionBlocks     = 3 // in favor, against
	sectionFouls      = 4 // committed, received
	sectionEfficiency = 5
	sectionCount      = 6
)

type statSet struct {
	StatType string `json:"statType"`
	Value    string `json:"value"`
}

type statColumn struct {
	StatSets []statSet `json:"statSets"`
}

type statSection struct {
	Stats []statColumn `json:"stats"`
}

type statTable struct {
	Sections    []statSection `json:"sections"`
	HeadSection statSection   `json:"headSection"`
}

// StatTableParser flattens the provider's positionally-indexed season table
// into one line per played game. The head section names each column's opponent
// and venue; its trailing aggregate columns carry a literal label instead of
// an opponent and are excluded from output.
type StatTableParser struct {
	mapAbbr func(string) string
}

func NewStatTableParser(mapAbbr func(string) string) *StatTableParser {
	if mapAbbr == nil {
		mapAbbr = func(code string) string { return code }
	}
	return &StatTableParser{mapAbbr: mapAbbr}
}

func (p *StatTableParser) Parse(table statTable) ([]usecase.ExternalGameLine, error) {
	if len(table.Sections) < sectionCount {
		return nil, fmt.Errorf("expected %d stat sections, got %d", sectionCount, len(table.Sections))
	}

	lines := make([]usecase.ExternalGameLine, 0, len(table.HeadSection.Stats))
	for col, head := range table.HeadSection.Stats {
		// aggregate columns (totals, averages) carry a label where game
		// columns carry an opponent code
		if len(head.StatSets) < 2 || head.StatSets[1].Value == "" {
			continue
		}

		line := usecase.ExternalGameLine{
			OpponentAbbr: p.mapAbbr(head.StatSets[1].Value),
			Home:         head.StatSets[1].StatType == "vsType",
		}

		shooting := columnValues(table.Sections[sectionShooting], col)
		line.Minutes = parseMinutes(valueAt(shooting, 0))
		line.Points = atoiOrZero(valueAt(shooting, 1))
		line.TwoFGMade, line.TwoFGTaken = splitMadeTaken(valueAt(shooting, 2))
		line.ThreeFGMade, line.ThreeFGTaken = splitMadeTaken(valueAt(shooting, 3))
		line.FTMade, line.FTTaken = splitMadeTaken(valueAt(shooting, 4))

		rebounds := columnValues(table.Sections[sectionRebounds], col)
		line.OffRebounds = atoiOrZero(valueAt(rebounds, 0))
		line.DefRebounds = atoiOrZero(valueAt(rebounds, 1))
		line.TotalRebounds = atoiOrZero(valueAt(rebounds, 2))

		playmaking := columnValues(table.Sections[sectionPlaymaking], col)
		line.Assists = atoiOrZero(valueAt(playmaking, 0))
		line.Steals = atoiOrZero(valueAt(playmaking, 1))
		line.Turnovers = atoiOrZero(valueAt(playmaking, 2))

		blocks := columnValues(table.Sections[sectionBlocks], col)
		line.BlocksFavor = atoiOrZero(valueAt(blocks, 0))
		line.BlocksAgainst = atoiOrZero(valueAt(blocks, 1))

		fouls := columnValues(table.Sections[sectionFouls], col)
		line.FoulsCommited = atoiOrZero(valueAt(fouls, 0))
		line.FoulsReceived = atoiOrZero(valueAt(fouls, 1))

		efficiency := columnValues(table.Sections[sectionEfficiency], col)
		line.Efficiency = atoiOrZero(valueAt(efficiency, 0))

		lines = append(lines, line)
	}

	return lines, nil
}

func columnValues(section statSection, col int) []statSet {
	if col >= len(section.Stats) {
		return nil
	}
	return section.Stats[col].StatSets
}

func valueAt(sets []statSet, idx int) string {
	if idx >= len(sets) {
		return ""
	}
	return sets[idx].Value
}

func atoiOrZero(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// splitMadeTaken splits an "M/A" made/attempted pair. Anything malformed
// defaults to zero rather than failing the whole line.
func splitMadeTaken(raw string) (made, taken int) {
	madePart, takenPart, found := strings.Cut(raw, "/")
	if !found {
		return 0, 0
	}
	return atoiOrZero(madePart), atoiOrZero(takenPart)
}

// parseMinutes handles both "MM:SS" and bare-minute forms, seconds becoming a
// fractional minute.
func parseMinutes(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	minutesPart, secondsPart, found := strings.Cut(raw, ":")
	if !found {
		value, err := strconv.ParseFloat(minutesPart, 64)
		if err != nil {
			return 0
		}
		return value
	}
	minutes := atoiOrZero(minutesPart)
	seconds := atoiOrZero(secondsPart)
	return float64(minutes) + float64(seconds)/60.0
}
