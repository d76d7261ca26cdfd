package memory

import (
	"context"
	"sync"

	"github.com/aurimasb/euroleague-stats/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	teams  []team.Team
	nextID int64
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	repo := &TeamRepository{nextID: 1}
	for _, item := range teams {
		if item.ID >= repo.nextID {
			repo.nextID = item.ID + 1
		}
		repo.teams = append(repo.teams, item)
	}
	return repo
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	out = append(out, r.teams...)

	return out, nil
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teams {
		if item.Name == name {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) GetByAbbreviation(_ context.Context, abbreviation string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teams {
		if item.Abbreviation == abbreviation {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Upsert(_ context.Context, t team.Team) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.teams {
		if r.teams[idx].Abbreviation == t.Abbreviation {
			r.teams[idx].Name = t.Name
			return r.teams[idx], nil
		}
	}

	t.ID = r.nextID
	r.nextID++
	r.teams = append(r.teams, t)

	return t, nil
}
