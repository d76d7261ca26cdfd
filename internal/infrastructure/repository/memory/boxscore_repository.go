package memory

import (
	"context"
	"sync"

	"github.com/aurimasb/euroleague-stats/internal/domain/boxscore"
)

type boxscoreKey struct {
	gameID   int64
	playerID int64
}

type BoxscoreRepository struct {
	mu   sync.RWMutex
	rows map[boxscoreKey]boxscore.Boxscore
}

func NewBoxscoreRepository() *BoxscoreRepository {
	return &BoxscoreRepository{rows: make(map[boxscoreKey]boxscore.Boxscore)}
}

func (r *BoxscoreRepository) GetByGamePlayer(_ context.Context, gameID, playerID int64) (boxscore.Boxscore, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[boxscoreKey{gameID: gameID, playerID: playerID}]
	return row, ok, nil
}

func (r *BoxscoreRepository) Upsert(_ context.Context, b boxscore.Boxscore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[boxscoreKey{gameID: b.GameID, playerID: b.PlayerID}] = b
	return nil
}

// Len reports the number of stored rows. Test helper.
func (r *BoxscoreRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rows)
}
