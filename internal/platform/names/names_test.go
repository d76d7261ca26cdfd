package names

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Jonas Jonaitis", "JONAS JONAITIS"},
		{"diacritics", "Ąžuolas Tubelis", "AZUOLAS TUBELIS"},
		{"punctuation", "O'Neal, Shaquille Jr.", "ONEAL SHAQUILLE JR"},
		{"whitespace runs", "  Marc   Klok \t", "MARC KLOK"},
		{"digits dropped", "Player 23", "PLAYER"},
		{"empty", "", ""},
		{"only punctuation", "...", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIsProjection(t *testing.T) {
	inputs := []string{"Ąžuolas Tubelis", "walter tavares", "Žygimantas  Janavičius", ""}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestNormalizeFoldsDiacriticsToASCII(t *testing.T) {
	if accented, plain := Normalize("Ąžuolas"), Normalize("Azuolas"); accented != plain {
		t.Fatalf("accented and plain spellings diverge: %q vs %q", accented, plain)
	}
}

func TestExtractLast(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jonas Jonaitis", "JONAITIS"},
		{"Jonaitis", "JONAITIS"},
		{"Žygimantas Janavičius", "JANAVICIUS"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		if got := ExtractLast(tc.in); got != tc.want {
			t.Fatalf("ExtractLast(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
