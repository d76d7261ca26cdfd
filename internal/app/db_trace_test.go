package app

import (
	"strings"
	"testing"
)

func TestFormatDBQueryForTrace_CollapsesWhitespace(t *testing.T) {
	got := formatDBQueryForTrace("SELECT team_id,\n\tteam_name\nFROM   teams")
	want := "SELECT team_id, team_name FROM teams"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatDBQueryForTrace_TruncatesLongQueries(t *testing.T) {
	long := "SELECT " + strings.Repeat("x", 2*maxTracedQueryLength)
	got := formatDBQueryForTrace(long)
	if len(got) != maxTracedQueryLength+len("...") {
		t.Fatalf("unexpected truncated length %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got[len(got)-10:])
	}
}

func TestFormatDBQueryForTrace_EmptyInput(t *testing.T) {
	if got := formatDBQueryForTrace("   "); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
