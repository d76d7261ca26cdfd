package usecase

import "testing"

func TestTeamCodeMapper_OverridesAndPassthrough(t *testing.T) {
	mapper := NewTeamCodeMapper(map[string]string{
		"FBB": "FEN",
		"KBA": "BKN",
		"VBC": "VAL",
		"ZAL": "ŽAL",
	})

	cases := []struct {
		code string
		want string
	}{
		{"FBB", "FEN"},
		{"KBA", "BKN"},
		{"VBC", "VAL"},
		{"ZAL", "ŽAL"},
		{"MAD", "MAD"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := mapper.Map(tc.code); got != tc.want {
			t.Fatalf("Map(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestTeamCodeMapper_NilTableIsPassthrough(t *testing.T) {
	mapper := NewTeamCodeMapper(nil)
	if got := mapper.Map("FBB"); got != "FBB" {
		t.Fatalf("Map(FBB) = %q, want passthrough", got)
	}
}
