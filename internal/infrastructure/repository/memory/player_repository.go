package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aurimasb/euroleague-stats/internal/domain/player"
	"github.com/aurimasb/euroleague-stats/internal/domain/team"
)

// PlayerRepository keeps players in memory. ListWithTeams joins against the
// team repository the same way the SQL repository joins against teams.
type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
	teams   *TeamRepository
	nextID  int64
}

func NewPlayerRepository(teams *TeamRepository, players []player.Player) *PlayerRepository {
	repo := &PlayerRepository{teams: teams, nextID: 1}
	for _, item := range players {
		if item.ID >= repo.nextID {
			repo.nextID = item.ID + 1
		}
		repo.players = append(repo.players, item)
	}
	return repo
}

func (r *PlayerRepository) GetByCode(_ context.Context, code string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.players {
		if item.Code == code {
			return item, true, nil
		}
	}

	return player.Player{}, false, nil
}

func (r *PlayerRepository) ListWithTeams(ctx context.Context) ([]player.WithTeam, error) {
	r.mu.RLock()
	players := make([]player.Player, len(r.players))
	copy(players, r.players)
	r.mu.RUnlock()

	out := make([]player.WithTeam, 0, len(players))
	for _, item := range players {
		var t team.Team
		if r.teams != nil {
			teams, err := r.teams.List(ctx)
			if err != nil {
				return nil, err
			}
			for _, candidate := range teams {
				if candidate.ID == item.TeamID {
					t = candidate
					break
				}
			}
		}
		if t.ID == 0 {
			continue
		}
		out = append(out, player.WithTeam{
			Player:           item,
			TeamName:         t.Name,
			TeamAbbreviation: t.Abbreviation,
		})
	}

	return out, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, p player.Player) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.players {
		if r.players[idx].Code == p.Code {
			r.players[idx].TeamID = p.TeamID
			r.players[idx].Position = p.Position
			return r.players[idx], nil
		}
	}

	p.ID = r.nextID
	r.nextID++
	r.players = append(r.players, p)

	return p, nil
}

func (r *PlayerRepository) UpdateFantasyPrice(_ context.Context, playerID int64, price, priceChange float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.players {
		if r.players[idx].ID == playerID {
			r.players[idx].FantasyPrice = price
			r.players[idx].FantasyPriceChange = priceChange
			return nil
		}
	}

	return fmt.Errorf("player id=%d not found", playerID)
}
