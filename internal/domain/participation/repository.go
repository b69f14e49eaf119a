package participation

import (
	"context"
	"time"
)

// Filter narrows participation listings. Zero values match everything.
type Filter struct {
	PlayerID string
	EventID  int
	Status   Status
}

// Matches reports whether p satisfies the filter.
func (f Filter) Matches(p *Participation) bool {
	if f.PlayerID != "" && p.PlayerID != f.PlayerID {
		return false
	}
	if f.EventID != 0 && p.EventID != f.EventID {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	return true
}

// Decision is a status change applied atomically by Repository.Decide.
// Slots caps the approved participations of the event; zero means unlimited.
type Decision struct {
	Status Status
	Slots  int
	At     time.Time
}

// Repository defines persistence behaviours for participations.
type Repository interface {
	Create(ctx context.Context, p *Participation) error
	GetByID(ctx context.Context, id string) (*Participation, error)
	List(ctx context.Context, filter Filter) ([]*Participation, error)
	// Decide moves a pending participation to d.Status. The transition check,
	// the slot count and the write happen atomically.
	Decide(ctx context.Context, id string, d Decision) (*Participation, error)
	Delete(ctx context.Context, id string) error
}
