package participation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/RealMosam/SEMS/internal/domain/participation"
	"github.com/RealMosam/SEMS/internal/domain/sport"

	"github.com/google/uuid"
)

// EventLookup resolves event ids against the catalog.
type EventLookup interface {
	GetEvent(ctx context.Context, id int) (*sport.Event, error)
}

// Service tracks which players take part in which events.
type Service struct {
	repo    domain.Repository
	events  EventLookup
	nowFunc func() time.Time
}

// NewService constructs a participation service. When events is nil, event
// ids are only checked for being positive and slot limits are not enforced.
func NewService(repo domain.Repository, events EventLookup) *Service {
	return &Service{
		repo:    repo,
		events:  events,
		nowFunc: time.Now,
	}
}

// CreateInput is the payload of a participation request.
type CreateInput struct {
	PlayerID string `json:"playerId"`
	EventID  int    `json:"eventId"`
}

// ListFilter holds raw query values for listing participations.
type ListFilter struct {
	PlayerID string
	EventID  int
	Status   string
}

// Create files a pending participation on behalf of requestedBy.
func (s *Service) Create(ctx context.Context, requestedBy string, input CreateInput) (*domain.Participation, error) {
	playerID := strings.TrimSpace(input.PlayerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", domain.ErrInvalidInput)
	}
	if _, err := s.lookupEvent(ctx, input.EventID); err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	p := &domain.Participation{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		EventID:   input.EventID,
		Status:    domain.StatusPending,
		CreatedBy: requestedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Seed stores a participation as given, bypassing the pending workflow.
func (s *Service) Seed(ctx context.Context, p *domain.Participation) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.nowFunc().UTC()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	return s.repo.Create(ctx, p)
}

// List returns participations matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*domain.Participation, error) {
	if filter.EventID < 0 {
		return nil, fmt.Errorf("%w: event id must be positive", domain.ErrInvalidInput)
	}
	f := domain.Filter{
		PlayerID: strings.TrimSpace(filter.PlayerID),
		EventID:  filter.EventID,
	}
	if raw := strings.TrimSpace(strings.ToLower(filter.Status)); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		f.Status = status
	}
	return s.repo.List(ctx, f)
}

// Get fetches a participation by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Participation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus decides a pending participation. Approval fails with
// ErrEventFull once the event's approved count reaches its slots.
func (s *Service) UpdateStatus(ctx context.Context, id, rawStatus string) (*domain.Participation, error) {
	next, err := domain.ParseStatus(strings.TrimSpace(strings.ToLower(rawStatus)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, p.Status, next)
	}

	decision := domain.Decision{Status: next, At: s.nowFunc().UTC()}
	if next == domain.StatusApproved {
		event, err := s.lookupEvent(ctx, p.EventID)
		if err != nil {
			return nil, err
		}
		if event != nil {
			decision.Slots = event.NoOfSlots
		}
	}
	return s.repo.Decide(ctx, p.ID, decision)
}

// Delete withdraws a participation.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) lookupEvent(ctx context.Context, eventID int) (*sport.Event, error) {
	if eventID <= 0 {
		return nil, fmt.Errorf("%w: event id must be positive", domain.ErrInvalidInput)
	}
	if s.events == nil {
		return nil, nil
	}
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, sport.ErrEventNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return nil, err
	}
	return event, nil
}
