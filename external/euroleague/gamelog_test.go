package euroleague

import (
	"testing"
)

func vs(opponent string, home bool) statColumn {
	statType := "atType"
	if home {
		statType = "vsType"
	}
	return statColumn{StatSets: []statSet{
		{Value: "Round"},
		{StatType: statType, Value: opponent},
	}}
}

func aggregate(label string) statColumn {
	return statColumn{StatSets: []statSet{{Value: label}}}
}

func column(values ...string) statColumn {
	sets := make([]statSet, 0, len(values))
	for _, v := range values {
		sets = append(sets, statSet{Value: v})
	}
	return statColumn{StatSets: sets}
}

func twoGameTable() statTable {
	return statTable{
		HeadSection: statSection{Stats: []statColumn{
			vs("VBC", true),
			vs("FBB", false),
			aggregate("Totals"),
			aggregate("Averages"),
		}},
		Sections: []statSection{
			{Stats: []statColumn{
				column("32:30", "17", "5/9", "2/5", "1/2"),
				column("28", "11", "3/7", "1/4", "2/2"),
				column("60:30", "28", "8/16", "3/9", "3/4"),
				column("30:15", "14", "4/8", "1/4", "1/2"),
			}},
			{Stats: []statColumn{
				column("2", "5", "7"),
				column("1", "4", "5"),
				column("3", "9", "12"),
				column("1", "4", "6"),
			}},
			{Stats: []statColumn{
				column("4", "2", "3"),
				column("6", "1", "1"),
				column("10", "3", "4"),
				column("5", "1", "2"),
			}},
			{Stats: []statColumn{
				column("1", "0"),
				column("0", "2"),
				column("1", "2"),
				column("0", "1"),
			}},
			{Stats: []statColumn{
				column("2", "3"),
				column("3", "5"),
				column("5", "8"),
				column("2", "4"),
			}},
			{Stats: []statColumn{
				column("21"),
				column("12"),
				column("33"),
				column("16"),
			}},
		},
	}
}

func TestStatTableParser_TwoGamesWithAggregates(t *testing.T) {
	mapAbbr := func(code string) string {
		if code == "VBC" {
			return "VAL"
		}
		return code
	}
	parser := NewStatTableParser(mapAbbr)

	lines, err := parser.Parse(twoGameTable())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 game lines, aggregates excluded, got %d", len(lines))
	}

	first := lines[0]
	if first.OpponentAbbr != "VAL" {
		t.Fatalf("opponent code not mapped: %s", first.OpponentAbbr)
	}
	if !first.Home {
		t.Fatalf("expected first game at home")
	}
	if first.Minutes != 32.5 {
		t.Fatalf("expected 32:30 parsed as 32.5 minutes, got %v", first.Minutes)
	}
	if first.Points != 17 {
		t.Fatalf("unexpected points: %d", first.Points)
	}
	if first.TwoFGMade != 5 || first.TwoFGTaken != 9 {
		t.Fatalf("2FG split wrong: %d/%d", first.TwoFGMade, first.TwoFGTaken)
	}
	if first.ThreeFGMade != 2 || first.ThreeFGTaken != 5 {
		t.Fatalf("3FG split wrong: %d/%d", first.ThreeFGMade, first.ThreeFGTaken)
	}
	if first.FTMade != 1 || first.FTTaken != 2 {
		t.Fatalf("FT split wrong: %d/%d", first.FTMade, first.FTTaken)
	}
	if first.OffRebounds != 2 || first.DefRebounds != 5 || first.TotalRebounds != 7 {
		t.Fatalf("rebound line wrong: %d/%d/%d", first.OffRebounds, first.DefRebounds, first.TotalRebounds)
	}
	if first.Assists != 4 || first.Steals != 2 || first.Turnovers != 3 {
		t.Fatalf("playmaking line wrong: %d/%d/%d", first.Assists, first.Steals, first.Turnovers)
	}
	if first.BlocksFavor != 1 || first.BlocksAgainst != 0 {
		t.Fatalf("block line wrong: %d/%d", first.BlocksFavor, first.BlocksAgainst)
	}
	if first.FoulsCommited != 2 || first.FoulsReceived != 3 {
		t.Fatalf("foul line wrong: %d/%d", first.FoulsCommited, first.FoulsReceived)
	}
	if first.Efficiency != 21 {
		t.Fatalf("unexpected efficiency: %d", first.Efficiency)
	}

	second := lines[1]
	if second.OpponentAbbr != "FBB" || second.Home {
		t.Fatalf("expected second game away at FBB, got %+v", second)
	}
	if second.Minutes != 28 {
		t.Fatalf("expected bare minutes 28, got %v", second.Minutes)
	}
}

func TestStatTableParser_MissingValuesDefaultToZero(t *testing.T) {
	table := statTable{
		HeadSection: statSection{Stats: []statColumn{vs("ŽAL", false)}},
		Sections: []statSection{
			{Stats: []statColumn{column("", "DNP", "x", "-", "")}},
			{Stats: []statColumn{column()}},
			{Stats: nil},
			{Stats: nil},
			{Stats: nil},
			{Stats: nil},
		},
	}

	lines, err := NewStatTableParser(nil).Parse(table)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	line := lines[0]
	if line.Minutes != 0 || line.Points != 0 || line.TwoFGMade != 0 || line.Efficiency != 0 {
		t.Fatalf("missing values must default to zero: %+v", line)
	}
	if line.OpponentAbbr != "ŽAL" || line.Home {
		t.Fatalf("unexpected head parse: %+v", line)
	}
}

func TestStatTableParser_TooFewSections(t *testing.T) {
	table := statTable{Sections: make([]statSection, 3)}
	if _, err := NewStatTableParser(nil).Parse(table); err == nil {
		t.Fatalf("expected error for truncated table")
	}
}
