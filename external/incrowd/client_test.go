package incrowd

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aurimasb/euroleague-stats/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:     server.URL,
		Competition: "E",
		Season:      "E2025",
		Logger:      logging.NewNop(),
	})
}

func TestClient_FetchClubs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/competitions/E/seasons/E2025/clubs" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[{"name":"Zalgiris Kaunas","tvCode":"ZAL"},{"name":"Valencia Basket","tvCode":"VBC"}]}`))
	})

	clubs, err := client.FetchClubs(t.Context())
	if err != nil {
		t.Fatalf("fetch clubs failed: %v", err)
	}
	if len(clubs) != 2 {
		t.Fatalf("expected 2 clubs, got %d", len(clubs))
	}
	if clubs[0].Name != "Zalgiris Kaunas" || clubs[0].Code != "ZAL" {
		t.Fatalf("unexpected club: %+v", clubs[0])
	}
}

func TestClient_FetchGamesByRound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("roundNumber"); got != "7" {
			t.Fatalf("unexpected round number: %s", got)
		}
		if got := r.URL.Query().Get("phaseTypeCode"); got != "RS" {
			t.Fatalf("unexpected phase type: %s", got)
		}
		w.Write([]byte(`{"data":[{"date":"2025-01-10T19:30:00Z","home":{"name":"Zalgiris Kaunas","score":91},"away":{"name":"Valencia Basket","score":84}}]}`))
	})

	games, err := client.FetchGamesByRound(t.Context(), 7)
	if err != nil {
		t.Fatalf("fetch games failed: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	want := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	if !games[0].Date.Equal(want) {
		t.Fatalf("expected date-only %v, got %v", want, games[0].Date)
	}
	if games[0].HomeScore != 91 || games[0].AwayScore != 84 {
		t.Fatalf("unexpected scores: %+v", games[0])
	}
}

func TestClient_FetchRoster_RecomposesName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("personType"); got != "J" {
			t.Fatalf("unexpected person type: %s", got)
		}
		w.Write([]byte(`{"data":[{"person":{"code":"P123","name":"Jonaitis, Jonas"},"club":{"name":"Zalgiris Kaunas","tvCode":"ZAL"},"positionName":"Guard"}]}`))
	})

	roster, err := client.FetchRoster(t.Context())
	if err != nil {
		t.Fatalf("fetch roster failed: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(roster))
	}
	entry := roster[0]
	if entry.FirstName != "Jonas" || entry.LastName != "Jonaitis" {
		t.Fatalf("name not recomposed: %+v", entry)
	}
	if entry.Code != "P123" || entry.TeamCode != "ZAL" || entry.Position != "Guard" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestClient_FetchClubs_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.FetchClubs(t.Context()); err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestSplitPersonName(t *testing.T) {
	cases := []struct {
		in        string
		wantFirst string
		wantLast  string
	}{
		{"Jonaitis, Jonas", "Jonas", "Jonaitis"},
		{"De Colo, Nando", "Nando", "De Colo"},
		{"Mononym", "", "Mononym"},
	}
	for _, tc := range cases {
		first, last := splitPersonName(tc.in)
		if first != tc.wantFirst || last != tc.wantLast {
			t.Fatalf("splitPersonName(%q) = (%q, %q), want (%q, %q)", tc.in, first, last, tc.wantFirst, tc.wantLast)
		}
	}
}
