package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aurimasb/euroleague-stats/internal/domain/game"
)

type GameRepository struct {
	mu     sync.RWMutex
	games  []game.Game
	nextID int64
}

func NewGameRepository(games []game.Game) *GameRepository {
	repo := &GameRepository{nextID: 1}
	for _, item := range games {
		if item.ID >= repo.nextID {
			repo.nextID = item.ID + 1
		}
		repo.games = append(repo.games, item)
	}
	return repo
}

func (r *GameRepository) FindByDateTeams(_ context.Context, date time.Time, homeTeamID, awayTeamID int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.games {
		if item.Date.Equal(date) && item.HomeTeamID == homeTeamID && item.AwayTeamID == awayTeamID {
			return item, true, nil
		}
	}

	return game.Game{}, false, nil
}

func (r *GameRepository) FindByTeams(_ context.Context, homeTeamID, awayTeamID int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.games {
		if item.HomeTeamID == homeTeamID && item.AwayTeamID == awayTeamID {
			return item, true, nil
		}
	}

	return game.Game{}, false, nil
}

func (r *GameRepository) Insert(_ context.Context, g game.Game) (game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g.ID = r.nextID
	r.nextID++
	r.games = append(r.games, g)

	return g, nil
}

func (r *GameRepository) UpdateScore(_ context.Context, gameID int64, homeScore, awayScore int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.games {
		if r.games[idx].ID == gameID {
			r.games[idx].HomeScore = homeScore
			r.games[idx].AwayScore = awayScore
			return nil
		}
	}

	return fmt.Errorf("game id=%d not found", gameID)
}
