package sport

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/RealMosam/SEMS/internal/domain/sport"
)

// Service exposes the sports and events catalog.
type Service struct {
	repo domain.Repository
}

// NewService constructs a sport service.
func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

// ListSports returns every sport.
func (s *Service) ListSports(ctx context.Context) ([]*domain.Sport, error) {
	return s.repo.ListSports(ctx)
}

// GetSport fetches a sport by id.
func (s *Service) GetSport(ctx context.Context, id int) (*domain.Sport, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: sport id must be positive", domain.ErrInvalidInput)
	}
	return s.repo.GetSport(ctx, id)
}

// FindSportByName looks a sport up by its name, ignoring case and surrounding spaces.
func (s *Service) FindSportByName(ctx context.Context, name string) (*domain.Sport, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: sport name is required", domain.ErrInvalidInput)
	}
	return s.repo.GetSportByName(ctx, name)
}

// ListEvents returns all events, or only those of sportID when it is positive.
func (s *Service) ListEvents(ctx context.Context, sportID int) ([]*domain.Event, error) {
	if sportID < 0 {
		return nil, fmt.Errorf("%w: sport id must be positive", domain.ErrInvalidInput)
	}
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if sportID == 0 {
		return events, nil
	}

	if _, err := s.repo.GetSport(ctx, sportID); err != nil {
		return nil, err
	}
	filtered := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if e.SportID == sportID {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// GetEvent fetches an event by id.
func (s *Service) GetEvent(ctx context.Context, id int) (*domain.Event, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: event id must be positive", domain.ErrInvalidInput)
	}
	return s.repo.GetEvent(ctx, id)
}
