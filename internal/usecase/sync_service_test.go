package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aurimasb/euroleague-stats/internal/domain/game"
	"github.com/aurimasb/euroleague-stats/internal/domain/player"
	"github.com/aurimasb/euroleague-stats/internal/domain/team"
	"github.com/aurimasb/euroleague-stats/internal/infrastructure/repository/memory"
	"github.com/aurimasb/euroleague-stats/internal/platform/logging"
)

type fakeScheduleProvider struct {
	clubs        []ExternalClub
	gamesByRound map[int][]ExternalGame
	roster       []ExternalRosterEntry
}

func (f *fakeScheduleProvider) FetchClubs(context.Context) ([]ExternalClub, error) {
	return f.clubs, nil
}

func (f *fakeScheduleProvider) FetchGamesByRound(_ context.Context, round int) ([]ExternalGame, error) {
	return f.gamesByRound[round], nil
}

func (f *fakeScheduleProvider) FetchRoster(context.Context) ([]ExternalRosterEntry, error) {
	return f.roster, nil
}

type fakeGameLogProvider struct {
	logsByCode map[string][]ExternalGameLine
}

func (f *fakeGameLogProvider) FetchGameLog(_ context.Context, _, _, code string) ([]ExternalGameLine, error) {
	lines, ok := f.logsByCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: code=%s", ErrNoStats, code)
	}
	return lines, nil
}

type fakeFantasyProvider struct {
	records []ExternalFantasyRecord
}

func (f *fakeFantasyProvider) FetchPrices(context.Context) ([]ExternalFantasyRecord, error) {
	return f.records, nil
}

type syncFixture struct {
	svc      *SyncService
	teams    *memory.TeamRepository
	players  *memory.PlayerRepository
	games    *memory.GameRepository
	boxes    *memory.BoxscoreRepository
	schedule *fakeScheduleProvider
	gameLog  *fakeGameLogProvider
	fantasy  *fakeFantasyProvider
}

func newSyncFixture(seedTeams []team.Team, seedPlayers []player.Player) *syncFixture {
	teams := memory.NewTeamRepository(seedTeams)
	players := memory.NewPlayerRepository(teams, seedPlayers)
	games := memory.NewGameRepository(nil)
	boxes := memory.NewBoxscoreRepository()
	schedule := &fakeScheduleProvider{gamesByRound: map[int][]ExternalGame{}}
	gameLog := &fakeGameLogProvider{logsByCode: map[string][]ExternalGameLine{}}
	fantasy := &fakeFantasyProvider{}

	codes := NewTeamCodeMapper(map[string]string{"FBB": "FEN", "KBA": "BKN", "VBC": "VAL", "ZAL": "ŽAL"})
	cfg := SyncConfig{RoundCount: 1, MatchThreshold: 65.5, FantasyThreshold: 85}

	svc := NewSyncService(schedule, gameLog, fantasy, teams, players, games, boxes, codes, cfg, logging.NewNop())

	return &syncFixture{
		svc:      svc,
		teams:    teams,
		players:  players,
		games:    games,
		boxes:    boxes,
		schedule: schedule,
		gameLog:  gameLog,
		fantasy:  fantasy,
	}
}

func TestSyncService_SyncTeams_Idempotent(t *testing.T) {
	fx := newSyncFixture(nil, nil)
	fx.schedule.clubs = []ExternalClub{
		{Name: "Fenerbahce Istanbul", Code: "FBB"},
		{Name: "Zalgiris Kaunas", Code: "ZAL"},
	}

	synced, err := fx.svc.SyncTeams(t.Context())
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if synced != 2 {
		t.Fatalf("expected 2 teams synced, got %d", synced)
	}

	fen, ok, err := fx.teams.GetByAbbreviation(t.Context(), "FEN")
	if err != nil || !ok {
		t.Fatalf("mapped abbreviation FEN not stored: ok=%v err=%v", ok, err)
	}

	if _, err := fx.svc.SyncTeams(t.Context()); err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	all, err := fx.teams.List(t.Context())
	if err != nil {
		t.Fatalf("list teams failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("replay duplicated teams: %d rows", len(all))
	}

	// a club rename must update the stored name in place
	fx.schedule.clubs[0].Name = "Fenerbahce Beko Istanbul"
	if _, err := fx.svc.SyncTeams(t.Context()); err != nil {
		t.Fatalf("rename sync failed: %v", err)
	}
	renamed, ok, err := fx.teams.GetByAbbreviation(t.Context(), "FEN")
	if err != nil || !ok {
		t.Fatalf("renamed team lookup failed: ok=%v err=%v", ok, err)
	}
	if renamed.ID != fen.ID {
		t.Fatalf("rename changed surrogate id: %d -> %d", fen.ID, renamed.ID)
	}
	if renamed.Name != "Fenerbahce Beko Istanbul" {
		t.Fatalf("rename not applied: %s", renamed.Name)
	}
}

func TestSyncService_SyncGames_InsertThenPatchScore(t *testing.T) {
	fx := newSyncFixture([]team.Team{
		{ID: 1, Name: "Zalgiris Kaunas", Abbreviation: "ŽAL"},
		{ID: 2, Name: "Valencia Basket", Abbreviation: "VAL"},
	}, nil)

	date := time.Date(2025, 1, 10, 19, 30, 0, 0, time.UTC)
	fx.schedule.gamesByRound[1] = []ExternalGame{{
		Date:         date,
		HomeTeamName: "Zalgiris Kaunas",
		AwayTeamName: "Valencia Basket",
		HomeScore:    0,
		AwayScore:    0,
	}}

	stats, err := fx.svc.SyncGames(t.Context())
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if stats.Inserted != 1 || stats.Updated != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	inserted, ok, err := fx.games.FindByDateTeams(t.Context(), day, 1, 2)
	if err != nil || !ok {
		t.Fatalf("inserted game not found: ok=%v err=%v", ok, err)
	}

	// identical payload is a no-op
	stats, err = fx.svc.SyncGames(t.Context())
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if stats.Inserted != 0 || stats.Updated != 0 {
		t.Fatalf("replay was not a no-op: %+v", stats)
	}

	// a corrected score patches the row and keeps its id
	fx.schedule.gamesByRound[1][0].HomeScore = 91
	fx.schedule.gamesByRound[1][0].AwayScore = 84
	stats, err = fx.svc.SyncGames(t.Context())
	if err != nil {
		t.Fatalf("score patch failed: %v", err)
	}
	if stats.Updated != 1 {
		t.Fatalf("expected 1 score update, got %+v", stats)
	}
	patched, ok, err := fx.games.FindByDateTeams(t.Context(), day, 1, 2)
	if err != nil || !ok {
		t.Fatalf("patched game not found: ok=%v err=%v", ok, err)
	}
	if patched.ID != inserted.ID {
		t.Fatalf("score patch changed surrogate id: %d -> %d", inserted.ID, patched.ID)
	}
	if patched.HomeScore != 91 || patched.AwayScore != 84 {
		t.Fatalf("score not patched: %d-%d", patched.HomeScore, patched.AwayScore)
	}
}

func TestSyncService_SyncGames_UnresolvableTeamIsFatal(t *testing.T) {
	fx := newSyncFixture([]team.Team{
		{ID: 1, Name: "Zalgiris Kaunas", Abbreviation: "ŽAL"},
	}, nil)
	fx.schedule.gamesByRound[1] = []ExternalGame{{
		Date:         time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		HomeTeamName: "Zalgiris Kaunas",
		AwayTeamName: "Unknown Club",
	}}

	_, err := fx.svc.SyncGames(t.Context())
	if !errors.Is(err, ErrTeamNotResolved) {
		t.Fatalf("expected ErrTeamNotResolved, got %v", err)
	}
}

func TestSyncService_SyncPlayers_UpsertAndBoxscores(t *testing.T) {
	fx := newSyncFixture([]team.Team{
		{ID: 1, Name: "Zalgiris Kaunas", Abbreviation: "ŽAL"},
		{ID: 2, Name: "Valencia Basket", Abbreviation: "VAL"},
	}, nil)
	fx.games.Insert(t.Context(), mustGame(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), 1, 2))

	fx.schedule.roster = []ExternalRosterEntry{
		{Code: "P123", FirstName: "Jonas", LastName: "Jonaitis", TeamName: "Zalgiris Kaunas", TeamCode: "ZAL", Position: "Guard"},
		{Code: "P999", FirstName: "No", LastName: "Stats", TeamName: "Valencia Basket", TeamCode: "VBC", Position: "Center"},
	}
	fx.gameLog.logsByCode["P123"] = []ExternalGameLine{{
		OpponentAbbr: "VAL",
		Home:         true,
		Minutes:      32.5,
		Points:       17,
		TwoFGMade:    5,
		TwoFGTaken:   9,
		Assists:      4,
	}}

	stats, err := fx.svc.SyncPlayers(t.Context())
	if err != nil {
		t.Fatalf("sync players failed: %v", err)
	}
	if stats.Synced != 2 {
		t.Fatalf("expected 2 players synced, got %d", stats.Synced)
	}
	if len(stats.Skipped) != 1 || stats.Skipped[0] != "No Stats" {
		t.Fatalf("expected the stat-less player skipped, got %v", stats.Skipped)
	}
	if stats.Boxscores != 1 {
		t.Fatalf("expected 1 boxscore, got %d", stats.Boxscores)
	}

	p, ok, err := fx.players.GetByCode(t.Context(), "P123")
	if err != nil || !ok {
		t.Fatalf("player P123 not stored: ok=%v err=%v", ok, err)
	}
	box, ok, err := fx.boxes.GetByGamePlayer(t.Context(), 1, p.ID)
	if err != nil || !ok {
		t.Fatalf("boxscore not stored: ok=%v err=%v", ok, err)
	}
	if box.MinutesPlayed != 32.5 || box.Points != 17 || box.TwoFGMade != 5 || box.TwoFGTaken != 9 {
		t.Fatalf("unexpected boxscore: %+v", box)
	}

	// re-ingestion with different values overwrites the single row
	fx.gameLog.logsByCode["P123"][0].Points = 21
	fx.gameLog.logsByCode["P123"][0].Assists = 7
	if _, err := fx.svc.SyncPlayers(t.Context()); err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if fx.boxes.Len() != 1 {
		t.Fatalf("replay duplicated boxscores: %d rows", fx.boxes.Len())
	}
	box, _, err = fx.boxes.GetByGamePlayer(t.Context(), 1, p.ID)
	if err != nil {
		t.Fatalf("re-read boxscore failed: %v", err)
	}
	if box.Points != 21 || box.Assists != 7 {
		t.Fatalf("boxscore not overwritten: %+v", box)
	}
}

func TestSyncService_SyncPlayers_TransferUpdatesTeamNotPrice(t *testing.T) {
	fx := newSyncFixture([]team.Team{
		{ID: 1, Name: "Zalgiris Kaunas", Abbreviation: "ŽAL"},
		{ID: 2, Name: "Valencia Basket", Abbreviation: "VAL"},
	}, []player.Player{
		{ID: 7, Code: "P123", Name: "Jonas Jonaitis", TeamID: 1, Position: "Guard", FantasyPrice: 9.5, FantasyPriceChange: 0.3},
	})

	fx.schedule.roster = []ExternalRosterEntry{
		{Code: "P123", FirstName: "Jonas", LastName: "Jonaitis", TeamName: "Valencia Basket", TeamCode: "VBC", Position: "Forward"},
	}

	if _, err := fx.svc.SyncPlayers(t.Context()); err != nil {
		t.Fatalf("sync players failed: %v", err)
	}

	p, ok, err := fx.players.GetByCode(t.Context(), "P123")
	if err != nil || !ok {
		t.Fatalf("player P123 not stored: ok=%v err=%v", ok, err)
	}
	if p.ID != 7 {
		t.Fatalf("upsert changed surrogate id: %d", p.ID)
	}
	if p.TeamID != 2 || p.Position != "Forward" {
		t.Fatalf("transfer not applied: team=%d position=%s", p.TeamID, p.Position)
	}
	if p.FantasyPrice != 9.5 || p.FantasyPriceChange != 0.3 {
		t.Fatalf("roster sync touched price fields: %+v", p)
	}
}

func TestSyncService_SyncFantasyPrices_EndToEnd(t *testing.T) {
	fx := newSyncFixture([]team.Team{
		{ID: 1, Name: "Valencia Basket", Abbreviation: "VAL"},
	}, []player.Player{
		{ID: 7, Code: "P123", Name: "Jonas Jonaitis", TeamID: 1, Position: "Guard"},
	})

	fx.fantasy.records = []ExternalFantasyRecord{
		{FirstName: "JONAS", LastName: "JONAITIS", TeamCode: "VBC", Price: 9.5, PriceChange: 0.5},
		{FirstName: "TOTALLY", LastName: "UNKNOWN", TeamCode: "VBC", Price: 3.0},
	}

	stats, err := fx.svc.SyncFantasyPrices(t.Context())
	if err != nil {
		t.Fatalf("fantasy sync failed: %v", err)
	}
	if stats.Matched != 1 {
		t.Fatalf("expected 1 match, got %d", stats.Matched)
	}
	if len(stats.Unmatched) != 1 {
		t.Fatalf("expected 1 unmatched record, got %v", stats.Unmatched)
	}
	if stats.Unmatched[0].Name != "TOTALLY UNKNOWN" || stats.Unmatched[0].BestScore < 0 {
		t.Fatalf("unexpected unmatched record: %+v", stats.Unmatched[0])
	}

	p, _, err := fx.players.GetByCode(t.Context(), "P123")
	if err != nil {
		t.Fatalf("re-read player failed: %v", err)
	}
	if p.FantasyPrice != 9.5 || p.FantasyPriceChange != 0.5 {
		t.Fatalf("price not patched: %+v", p)
	}
}

func TestSyncService_SyncFantasyPrices_EmptyTeamScoresMinusOne(t *testing.T) {
	fx := newSyncFixture([]team.Team{
		{ID: 1, Name: "Valencia Basket", Abbreviation: "VAL"},
	}, nil)

	fx.fantasy.records = []ExternalFantasyRecord{
		{FirstName: "JONAS", LastName: "JONAITIS", TeamCode: "VBC", Price: 9.5},
	}

	stats, err := fx.svc.SyncFantasyPrices(t.Context())
	if err != nil {
		t.Fatalf("fantasy sync failed: %v", err)
	}
	if len(stats.Unmatched) != 1 || stats.Unmatched[0].BestScore != -1 {
		t.Fatalf("expected no-candidates outcome with score -1, got %+v", stats.Unmatched)
	}
}

func TestSyncService_Run_ExecutesAllFourInOrder(t *testing.T) {
	fx := newSyncFixture(nil, nil)
	fx.schedule.clubs = []ExternalClub{
		{Name: "Zalgiris Kaunas", Code: "ZAL"},
		{Name: "Valencia Basket", Code: "VBC"},
	}
	fx.schedule.gamesByRound[1] = []ExternalGame{{
		Date:         time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		HomeTeamName: "Zalgiris Kaunas",
		AwayTeamName: "Valencia Basket",
		HomeScore:    91,
		AwayScore:    84,
	}}
	fx.schedule.roster = []ExternalRosterEntry{
		{Code: "P123", FirstName: "Jonas", LastName: "Jonaitis", TeamName: "Zalgiris Kaunas", TeamCode: "ZAL", Position: "Guard"},
	}
	fx.gameLog.logsByCode["P123"] = []ExternalGameLine{{
		OpponentAbbr: "VAL",
		Home:         true,
		Minutes:      32.5,
		Points:       17,
	}}
	fx.fantasy.records = []ExternalFantasyRecord{
		{FirstName: "JONAS", LastName: "JONAITIS", TeamCode: "ZAL", Price: 9.5, PriceChange: 0.5},
	}

	summary, err := fx.svc.Run(t.Context())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Teams != 2 || summary.Games.Inserted != 1 || summary.Players.Synced != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Players.Boxscores != 1 {
		t.Fatalf("expected 1 boxscore, got %d", summary.Players.Boxscores)
	}
	if summary.Fantasy.Matched != 1 {
		t.Fatalf("expected fantasy match, got %+v", summary.Fantasy)
	}
}

func mustGame(t *testing.T, date time.Time, homeID, awayID int64) game.Game {
	t.Helper()
	return game.Game{Date: date, HomeTeamID: homeID, AwayTeamID: awayID}
}
