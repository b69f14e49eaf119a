package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/RealMosam/SEMS/internal/domain/participation"
)

// ParticipationRepository is an in-memory participation store.
type ParticipationRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Participation
}

// NewParticipationRepository creates an empty participation store.
func NewParticipationRepository() *ParticipationRepository {
	return &ParticipationRepository{
		items: make(map[string]domain.Participation),
	}
}

// Create stores p, rejecting a second entry for the same player and event.
func (r *ParticipationRepository) Create(_ context.Context, p *domain.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.PlayerID == p.PlayerID && existing.EventID == p.EventID {
			return domain.ErrDuplicate
		}
	}
	r.items[p.ID] = *p
	return nil
}

func (r *ParticipationRepository) GetByID(_ context.Context, id string) (*domain.Participation, error) {
	r.mu.RLock()
	p, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *ParticipationRepository) List(_ context.Context, filter domain.Filter) ([]*domain.Participation, error) {
	r.mu.RLock()
	out := make([]*domain.Participation, 0, len(r.items))
	for _, item := range r.items {
		if !filter.Matches(&item) {
			continue
		}
		p := item
		out = append(out, &p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Decide applies d to the participation id under the write lock.
func (r *ParticipationRepository) Decide(_ context.Context, id string, d domain.Decision) (*domain.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !existing.Status.CanTransition(d.Status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, existing.Status, d.Status)
	}
	if d.Status == domain.StatusApproved && d.Slots > 0 {
		approved := 0
		for _, item := range r.items {
			if item.EventID == existing.EventID && item.Status == domain.StatusApproved {
				approved++
			}
		}
		if approved >= d.Slots {
			return nil, domain.ErrEventFull
		}
	}

	existing.Status = d.Status
	existing.UpdatedAt = d.At
	r.items[id] = existing
	return &existing, nil
}

func (r *ParticipationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.Repository = (*ParticipationRepository)(nil)
