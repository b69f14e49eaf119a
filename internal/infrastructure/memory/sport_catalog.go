package memory

import (
	"context"
	"sort"
	"strings"

	domain "github.com/RealMosam/SEMS/internal/domain/sport"
)

// SportCatalog serves a fixed set of sports and events.
// It is immutable after construction and safe for concurrent use.
type SportCatalog struct {
	sports []domain.Sport
	events []domain.Event
}

// NewSportCatalog builds a catalog from the given rows, ordered by id.
func NewSportCatalog(sports []domain.Sport, events []domain.Event) *SportCatalog {
	c := &SportCatalog{
		sports: append([]domain.Sport(nil), sports...),
		events: append([]domain.Event(nil), events...),
	}
	sort.Slice(c.sports, func(i, j int) bool { return c.sports[i].ID < c.sports[j].ID })
	sort.Slice(c.events, func(i, j int) bool { return c.events[i].ID < c.events[j].ID })
	return c
}

func (c *SportCatalog) ListSports(_ context.Context) ([]*domain.Sport, error) {
	out := make([]*domain.Sport, 0, len(c.sports))
	for _, s := range c.sports {
		item := s
		out = append(out, &item)
	}
	return out, nil
}

func (c *SportCatalog) GetSport(_ context.Context, id int) (*domain.Sport, error) {
	for _, s := range c.sports {
		if s.ID == id {
			item := s
			return &item, nil
		}
	}
	return nil, domain.ErrSportNotFound
}

// GetSportByName matches names case-insensitively.
func (c *SportCatalog) GetSportByName(_ context.Context, name string) (*domain.Sport, error) {
	for _, s := range c.sports {
		if strings.EqualFold(s.Name, name) {
			item := s
			return &item, nil
		}
	}
	return nil, domain.ErrSportNotFound
}

func (c *SportCatalog) ListEvents(_ context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(c.events))
	for _, e := range c.events {
		item := e
		out = append(out, &item)
	}
	return out, nil
}

func (c *SportCatalog) GetEvent(_ context.Context, id int) (*domain.Event, error) {
	for _, e := range c.events {
		if e.ID == id {
			item := e
			return &item, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

var _ domain.Repository = (*SportCatalog)(nil)
