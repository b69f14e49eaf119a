package player

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	domain "github.com/RealMosam/SEMS/internal/domain/player"
	"github.com/RealMosam/SEMS/internal/domain/sport"

	"github.com/google/uuid"
)

const (
	minAge = 1
	maxAge = 120
)

// SportLookup resolves sport ids against the catalog.
type SportLookup interface {
	GetSport(ctx context.Context, id int) (*sport.Sport, error)
}

// Service encapsulates player registry use cases.
type Service struct {
	repo    domain.Repository
	sports  SportLookup
	nowFunc func() time.Time
}

// NewService constructs a player service. sports may be nil, in which case
// sport ids are only checked for being positive.
func NewService(repo domain.Repository, sports SportLookup) *Service {
	return &Service{
		repo:    repo,
		sports:  sports,
		nowFunc: time.Now,
	}
}

// CreateInput contains the payload required for player registration.
type CreateInput struct {
	ID            string `json:"-"`
	SportID       int    `json:"sportId"`
	Name          string `json:"playerName"`
	Age           int    `json:"age"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Gender        string `json:"gender"`
}

// UpdateInput encapsulates partial player updates.
type UpdateInput struct {
	SportID       *int    `json:"sportId"`
	Name          *string `json:"playerName"`
	Age           *int    `json:"age"`
	ContactNumber *string `json:"contactNumber"`
	Email         *string `json:"email"`
	Gender        *string `json:"gender"`
}

// Create stores a new player after validation. A blank input ID gets a random uuid.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", domain.ErrInvalidInput)
	}
	if err := validateAge(input.Age); err != nil {
		return nil, err
	}
	gender, err := domain.ParseGender(strings.TrimSpace(input.Gender))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := s.checkSport(ctx, input.SportID); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = uuid.NewString()
	}

	now := s.nowFunc().UTC()
	player := &domain.Player{
		ID:            id,
		SportID:       input.SportID,
		Name:          name,
		Age:           input.Age,
		ContactNumber: strings.TrimSpace(input.ContactNumber),
		Email:         email,
		Gender:        gender,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// List retrieves all players.
func (s *Service) List(ctx context.Context) ([]*domain.Player, error) {
	return s.repo.List(ctx)
}

// Get fetches a player by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Player, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

// Update applies partial updates to a player.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.Player, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}

	player, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var name, email, contact *string
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: player name cannot be empty", domain.ErrInvalidInput)
		}
		name = &trimmed
	}
	if input.Email != nil {
		normalized, err := normalizeEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		email = &normalized
	}
	if input.ContactNumber != nil {
		trimmed := strings.TrimSpace(*input.ContactNumber)
		contact = &trimmed
	}
	if input.Age != nil {
		if err := validateAge(*input.Age); err != nil {
			return nil, err
		}
	}
	if input.SportID != nil {
		if err := s.checkSport(ctx, *input.SportID); err != nil {
			return nil, err
		}
	}
	var gender *domain.Gender
	if input.Gender != nil {
		g, err := domain.ParseGender(strings.TrimSpace(*input.Gender))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		gender = &g
	}

	player.Update(name, contact, email, input.Age, input.SportID, gender)
	player.UpdatedAt = s.nowFunc().UTC()

	if err := s.repo.Update(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// Delete removes a player.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) checkSport(ctx context.Context, sportID int) error {
	if sportID <= 0 {
		return fmt.Errorf("%w: sport id must be positive", domain.ErrInvalidInput)
	}
	if s.sports == nil {
		return nil
	}
	if _, err := s.sports.GetSport(ctx, sportID); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

func validateAge(age int) error {
	if age < minAge || age > maxAge {
		return fmt.Errorf("%w: age must be between %d and %d", domain.ErrInvalidInput, minAge, maxAge)
	}
	return nil
}

// normalizeEmail accepts an empty address; anything else must parse as a bare address.
func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", fmt.Errorf("%w: email is not valid", domain.ErrInvalidInput)
	}
	return strings.ToLower(raw), nil
}
