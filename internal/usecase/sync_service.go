package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aurimasb/euroleague-stats/internal/domain/boxscore"
	"github.com/aurimasb/euroleague-stats/internal/domain/game"
	"github.com/aurimasb/euroleague-stats/internal/domain/player"
	"github.com/aurimasb/euroleague-stats/internal/domain/team"
	"github.com/aurimasb/euroleague-stats/internal/platform/logging"
)

// ScheduleProvider is the club/schedule/roster feed.
type ScheduleProvider interface {
	FetchClubs(ctx context.Context) ([]ExternalClub, error)
	FetchGamesByRound(ctx context.Context, round int) ([]ExternalGame, error)
	FetchRoster(ctx context.Context) ([]ExternalRosterEntry, error)
}

// GameLogProvider returns a player's flattened per-game season log. A player
// with no logged games at all must surface ErrNoStats.
type GameLogProvider interface {
	FetchGameLog(ctx context.Context, firstName, lastName, code string) ([]ExternalGameLine, error)
}

// FantasyPriceProvider is the fantasy-pricing feed.
type FantasyPriceProvider interface {
	FetchPrices(ctx context.Context) ([]ExternalFantasyRecord, error)
}

type ExternalClub struct {
	Name string
	Code string
}

type ExternalGame struct {
	Date         time.Time
	HomeTeamName string
	AwayTeamName string
	HomeScore    int
	AwayScore    int
}

type ExternalRosterEntry struct {
	Code      string
	FirstName string
	LastName  string
	TeamName  string
	TeamCode  string
	Position  string
}

// ExternalGameLine is one game column of a player's season log, already
// flattened and with the opponent code mapped into the internal vocabulary.
type ExternalGameLine struct {
	OpponentAbbr  string
	Home          bool
	Minutes       float64
	Points        int
	TwoFGMade     int
	TwoFGTaken    int
	ThreeFGMade   int
	ThreeFGTaken  int
	FTMade        int
	FTTaken       int
	OffRebounds   int
	DefRebounds   int
	TotalRebounds int
	Assists       int
	Steals        int
	Turnovers     int
	BlocksFavor   int
	BlocksAgainst int
	FoulsCommited int
	FoulsReceived int
	Efficiency    int
}

type ExternalFantasyRecord struct {
	FirstName   string
	MiddleName  string
	LastName    string
	TeamCode    string
	Price       float64
	PriceChange float64
}

type SyncConfig struct {
	RoundCount       int
	MatchThreshold   float64
	FantasyThreshold float64
}

type GameSyncStats struct {
	Inserted int
	Updated  int
}

type PlayerSyncStats struct {
	Synced    int
	Skipped   []string
	Boxscores int
}

type UnmatchedFantasy struct {
	Name      string
	TeamAbbr  string
	BestScore float64
}

type FantasySyncStats struct {
	Matched   int
	Unmatched []UnmatchedFantasy
}

type RunSummary struct {
	Teams   int
	Games   GameSyncStats
	Players PlayerSyncStats
	Fantasy FantasySyncStats
}

// SyncService reconciles the three provider feeds into the relational store.
// Operations run one at a time in FK-safe order; each is idempotent and safe
// to re-run against identical payloads.
type SyncService struct {
	schedule ScheduleProvider
	gameLog  GameLogProvider
	fantasy  FantasyPriceProvider

	teamRepo   team.Repository
	playerRepo player.Repository
	gameRepo   game.Repository
	boxRepo    boxscore.Repository
	codes      *TeamCodeMapper
	cfg        SyncConfig
	logger     *logging.Logger
}

func NewSyncService(
	schedule ScheduleProvider,
	gameLog GameLogProvider,
	fantasy FantasyPriceProvider,
	teamRepo team.Repository,
	playerRepo player.Repository,
	gameRepo game.Repository,
	boxRepo boxscore.Repository,
	codes *TeamCodeMapper,
	cfg SyncConfig,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if codes == nil {
		codes = NewTeamCodeMapper(nil)
	}

	return &SyncService{
		schedule:   schedule,
		gameLog:    gameLog,
		fantasy:    fantasy,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		boxRepo:    boxRepo,
		codes:      codes,
		cfg:        cfg,
		logger:     logger,
	}
}

// SyncTeams maps every club code and upserts the team by abbreviation, so a
// renamed club updates its display name in place.
func (s *SyncService) SyncTeams(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncTeams")
	defer span.End()

	if s.schedule == nil || s.teamRepo == nil {
		return 0, fmt.Errorf("%w: schedule provider or team repository is not configured", ErrDependencyUnavailable)
	}

	clubs, err := s.schedule.FetchClubs(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch clubs: %w", err)
	}

	synced := 0
	for _, club := range clubs {
		t := team.Team{
			Name:         club.Name,
			Abbreviation: s.codes.Map(club.Code),
		}
		if err := t.Validate(); err != nil {
			return synced, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		s.logger.InfoContext(ctx, "syncing team", "abbreviation", t.Abbreviation, "name", t.Name)
		if _, err := s.teamRepo.Upsert(ctx, t); err != nil {
			return synced, fmt.Errorf("upsert team abbr=%s: %w", t.Abbreviation, err)
		}
		synced++
	}

	return synced, nil
}

// SyncGames walks every round of the season, resolves home/away by exact team
// name, inserts unseen (date, home, away) fixtures and patches scores that
// changed. An unresolvable team name aborts the batch: it means SyncTeams has
// not run yet, or a provider renamed a club outside the override table.
func (s *SyncService) SyncGames(ctx context.Context) (GameSyncStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncGames")
	defer span.End()

	var stats GameSyncStats
	if s.schedule == nil || s.teamRepo == nil || s.gameRepo == nil {
		return stats, fmt.Errorf("%w: schedule provider or repositories are not configured", ErrDependencyUnavailable)
	}

	for round := 1; round <= s.cfg.RoundCount; round++ {
		games, err := s.schedule.FetchGamesByRound(ctx, round)
		if err != nil {
			return stats, fmt.Errorf("fetch games round=%d: %w", round, err)
		}

		for _, eg := range games {
			homeTeam, ok, err := s.teamRepo.GetByName(ctx, eg.HomeTeamName)
			if err != nil {
				return stats, fmt.Errorf("lookup home team name=%s: %w", eg.HomeTeamName, err)
			}
			if !ok {
				return stats, fmt.Errorf("%w: home team name=%s", ErrTeamNotResolved, eg.HomeTeamName)
			}
			awayTeam, ok, err := s.teamRepo.GetByName(ctx, eg.AwayTeamName)
			if err != nil {
				return stats, fmt.Errorf("lookup away team name=%s: %w", eg.AwayTeamName, err)
			}
			if !ok {
				return stats, fmt.Errorf("%w: away team name=%s", ErrTeamNotResolved, eg.AwayTeamName)
			}

			date := truncateToDate(eg.Date)
			existing, found, err := s.gameRepo.FindByDateTeams(ctx, date, homeTeam.ID, awayTeam.ID)
			if err != nil {
				return stats, fmt.Errorf("lookup game date=%s home=%d away=%d: %w", date.Format("2006-01-02"), homeTeam.ID, awayTeam.ID, err)
			}

			if !found {
				g := game.Game{
					Date:       date,
					HomeTeamID: homeTeam.ID,
					AwayTeamID: awayTeam.ID,
					HomeScore:  eg.HomeScore,
					AwayScore:  eg.AwayScore,
				}
				if err := g.Validate(); err != nil {
					return stats, fmt.Errorf("%w: %v", ErrInvalidInput, err)
				}
				if _, err := s.gameRepo.Insert(ctx, g); err != nil {
					return stats, fmt.Errorf("insert game date=%s: %w", date.Format("2006-01-02"), err)
				}
				stats.Inserted++
				s.logger.InfoContext(ctx, "inserted game",
					"date", date.Format("2006-01-02"),
					"home", eg.HomeTeamName, "home_score", eg.HomeScore,
					"away", eg.AwayTeamName, "away_score", eg.AwayScore,
				)
				continue
			}

			if existing.HomeScore != eg.HomeScore || existing.AwayScore != eg.AwayScore {
				if err := s.gameRepo.UpdateScore(ctx, existing.ID, eg.HomeScore, eg.AwayScore); err != nil {
					return stats, fmt.Errorf("update score game_id=%d: %w", existing.ID, err)
				}
				stats.Updated++
				s.logger.InfoContext(ctx, "updated game score",
					"game_id", existing.ID,
					"old_home_score", existing.HomeScore, "old_away_score", existing.AwayScore,
					"home_score", eg.HomeScore, "away_score", eg.AwayScore,
				)
			}
		}
	}

	return stats, nil
}

// SyncPlayers upserts every roster entry by provider code (team and position
// follow the feed, prices never change here), then ingests that player's game
// log into boxscore rows. A player with no stats payload or a failed log fetch
// is logged and skipped; the rest of the batch continues.
func (s *SyncService) SyncPlayers(ctx context.Context) (PlayerSyncStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncPlayers")
	defer span.End()

	var stats PlayerSyncStats
	if s.schedule == nil || s.gameLog == nil || s.teamRepo == nil || s.playerRepo == nil || s.gameRepo == nil || s.boxRepo == nil {
		return stats, fmt.Errorf("%w: providers or repositories are not configured", ErrDependencyUnavailable)
	}

	roster, err := s.schedule.FetchRoster(ctx)
	if err != nil {
		return stats, fmt.Errorf("fetch roster: %w", err)
	}

	for _, entry := range roster {
		fullName := strings.TrimSpace(entry.FirstName + " " + entry.LastName)
		teamAbbr := s.codes.Map(entry.TeamCode)

		t, ok, err := s.teamRepo.GetByAbbreviation(ctx, teamAbbr)
		if err != nil {
			return stats, fmt.Errorf("lookup team abbr=%s: %w", teamAbbr, err)
		}
		if !ok {
			return stats, fmt.Errorf("%w: abbreviation=%s team_name=%s", ErrTeamNotResolved, teamAbbr, entry.TeamName)
		}

		p := player.Player{
			Code:     entry.Code,
			Name:     fullName,
			TeamID:   t.ID,
			Position: entry.Position,
		}
		if err := p.Validate(); err != nil {
			return stats, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		p, err = s.playerRepo.Upsert(ctx, p)
		if err != nil {
			return stats, fmt.Errorf("upsert player code=%s: %w", entry.Code, err)
		}
		stats.Synced++

		lines, err := s.gameLog.FetchGameLog(ctx, entry.FirstName, entry.LastName, entry.Code)
		if err != nil {
			s.logger.WarnContext(ctx, "no stats found for player", "player", fullName, "code", entry.Code, "error", err)
			stats.Skipped = append(stats.Skipped, fullName)
			continue
		}

		upserted, err := s.ingestGameLines(ctx, p.ID, t.ID, lines)
		if err != nil {
			return stats, err
		}
		stats.Boxscores += upserted
		s.logger.InfoContext(ctx, "updated stats for player", "player", fullName, "games", upserted)
	}

	return stats, nil
}

func (s *SyncService) ingestGameLines(ctx context.Context, playerID, teamID int64, lines []ExternalGameLine) (int, error) {
	upserted := 0
	for _, line := range lines {
		opp, ok, err := s.teamRepo.GetByAbbreviation(ctx, line.OpponentAbbr)
		if err != nil {
			return upserted, fmt.Errorf("lookup opponent abbr=%s: %w", line.OpponentAbbr, err)
		}
		if !ok {
			s.logger.WarnContext(ctx, "opponent not found", "abbreviation", line.OpponentAbbr)
			continue
		}

		homeID, awayID := opp.ID, teamID
		if line.Home {
			homeID, awayID = teamID, opp.ID
		}

		g, ok, err := s.gameRepo.FindByTeams(ctx, homeID, awayID)
		if err != nil {
			return upserted, fmt.Errorf("lookup game home=%d away=%d: %w", homeID, awayID, err)
		}
		if !ok {
			s.logger.WarnContext(ctx, "game not found for teams", "home_team_id", homeID, "away_team_id", awayID)
			continue
		}

		b := boxscore.Boxscore{
			GameID:        g.ID,
			PlayerID:      playerID,
			MinutesPlayed: line.Minutes,
			Points:        line.Points,
			TwoFGMade:     line.TwoFGMade,
			TwoFGTaken:    line.TwoFGTaken,
			ThreeFGMade:   line.ThreeFGMade,
			ThreeFGTaken:  line.ThreeFGTaken,
			FTMade:        line.FTMade,
			FTTaken:       line.FTTaken,
			OffRebounds:   line.OffRebounds,
			DefRebounds:   line.DefRebounds,
			Assists:       line.Assists,
			Steals:        line.Steals,
			BlocksFavor:   line.BlocksFavor,
			BlocksAgainst: line.BlocksAgainst,
			FoulsCommited: line.FoulsCommited,
			FoulsReceived: line.FoulsReceived,
			Efficiency:    line.Efficiency,
		}
		if err := s.boxRepo.Upsert(ctx, b); err != nil {
			return upserted, fmt.Errorf("upsert boxscore game_id=%d player_id=%d: %w", g.ID, playerID, err)
		}
		upserted++
	}

	return upserted, nil
}

// SyncFantasyPrices cross-matches the fantasy feed against the roster by
// normalized name within the feed's own team block, at the strict threshold.
// Matches patch only the two price fields; unmatched records are collected
// and logged with a ranked candidate dump, never silently dropped.
func (s *SyncService) SyncFantasyPrices(ctx context.Context) (FantasySyncStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncFantasyPrices")
	defer span.End()

	var stats FantasySyncStats
	if s.fantasy == nil || s.playerRepo == nil {
		return stats, fmt.Errorf("%w: fantasy provider or player repository is not configured", ErrDependencyUnavailable)
	}

	index, err := BuildCandidateIndex(ctx, s.playerRepo)
	if err != nil {
		return stats, fmt.Errorf("build candidate index: %w", err)
	}
	matcher := NewFuzzyMatcher(index, s.cfg.MatchThreshold)

	records, err := s.fantasy.FetchPrices(ctx)
	if err != nil {
		return stats, fmt.Errorf("fetch fantasy prices: %w", err)
	}

	for _, rec := range records {
		// middle names vary too much across providers to help matching
		fullName := strings.TrimSpace(rec.FirstName + " " + rec.LastName)
		teamAbbr := s.codes.Map(rec.TeamCode)

		match, score := matcher.MatchPlayer(fullName, teamAbbr, s.cfg.FantasyThreshold)
		if match == nil {
			stats.Unmatched = append(stats.Unmatched, UnmatchedFantasy{
				Name:      fullName,
				TeamAbbr:  teamAbbr,
				BestScore: score,
			})
			s.logger.WarnContext(ctx, "unmatched fantasy player",
				"name", fullName, "team", teamAbbr, "best_score", score,
				"candidates", matcher.RankCandidates(fullName, teamAbbr),
			)
			continue
		}

		s.logger.InfoContext(ctx, "matched fantasy player",
			"name", fullName, "matched", match.Name, "score", score,
		)
		if err := s.playerRepo.UpdateFantasyPrice(ctx, match.PlayerID, rec.Price, rec.PriceChange); err != nil {
			return stats, fmt.Errorf("update fantasy price player_id=%d: %w", match.PlayerID, err)
		}
		stats.Matched++
	}

	return stats, nil
}

// Run executes the four operations in FK-safe order and logs an end-of-run
// summary of unmatched and skipped entities.
func (s *SyncService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Run")
	defer span.End()

	var summary RunSummary
	var err error

	if summary.Teams, err = s.SyncTeams(ctx); err != nil {
		return summary, err
	}
	if summary.Games, err = s.SyncGames(ctx); err != nil {
		return summary, err
	}
	if summary.Players, err = s.SyncPlayers(ctx); err != nil {
		return summary, err
	}
	if summary.Fantasy, err = s.SyncFantasyPrices(ctx); err != nil {
		return summary, err
	}

	s.logger.InfoContext(ctx, "sync run finished",
		"teams", summary.Teams,
		"games_inserted", summary.Games.Inserted,
		"games_updated", summary.Games.Updated,
		"players", summary.Players.Synced,
		"players_skipped", summary.Players.Skipped,
		"boxscores", summary.Players.Boxscores,
		"fantasy_matched", summary.Fantasy.Matched,
		"fantasy_unmatched", summary.Fantasy.Unmatched,
	)

	return summary, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
