package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/RealMosam/SEMS/internal/domain/player"
)

// PlayerRepository is an in-memory player registry.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]domain.Player
}

// NewPlayerRepository creates an empty player registry.
func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		players: make(map[string]domain.Player),
	}
}

func (r *PlayerRepository) Create(_ context.Context, player *domain.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[player.ID]; exists {
		return domain.ErrAlreadyExists
	}
	r.players[player.ID] = *player
	return nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (*domain.Player, error) {
	r.mu.RLock()
	player, ok := r.players[id]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNotFound
	}
	return &player, nil
}

// List returns players ordered by creation time, then name.
func (r *PlayerRepository) List(_ context.Context) ([]*domain.Player, error) {
	r.mu.RLock()
	out := make([]*domain.Player, 0, len(r.players))
	for _, player := range r.players {
		p := player
		out = append(out, &p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *PlayerRepository) Update(_ context.Context, player *domain.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[player.ID]; !ok {
		return domain.ErrNotFound
	}
	r.players[player.ID] = *player
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.players, id)
	return nil
}

var _ domain.Repository = (*PlayerRepository)(nil)
