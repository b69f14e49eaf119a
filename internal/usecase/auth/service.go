package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/RealMosam/SEMS/internal/domain/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// Service coordinates credential registration and authentication.
type Service struct {
	store     domain.CredentialStore
	tokens    TokenIssuer
	nowFunc   func() time.Time
	cost      int
	dummyHash []byte
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source used for credential timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.nowFunc = now
		}
	}
}

// WithHashCost sets the bcrypt cost for newly stored hashes.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

// NewService constructs an auth service.
func NewService(store domain.CredentialStore, tokens TokenIssuer, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("credential store is required")
	}
	if tokens == nil {
		return nil, errors.New("token issuer is required")
	}

	s := &Service{
		store:   store,
		tokens:  tokens,
		nowFunc: time.Now,
		cost:    bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Unknown usernames are compared against this hash so a miss costs the same as a mismatch.
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	s.dummyHash = dummy

	return s, nil
}

// Register stores a new credential and returns it without the password hash.
func (s *Service) Register(ctx context.Context, username, password string) (*domain.Credential, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	credential := &domain.Credential{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hashed),
		CreatedAt:    s.nowFunc().UTC(),
	}

	if err := s.store.Insert(ctx, credential); err != nil {
		return nil, err
	}

	return sanitize(credential), nil
}

// Authenticate checks the password for username and issues a token on success.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", domain.ErrUnauthorized
	}

	credential, err := s.store.Find(ctx, username)
	switch {
	case errors.Is(err, domain.ErrCredentialNotFound):
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(truncate(password)))
		return "", domain.ErrUnauthorized
	case err != nil:
		return "", err
	}

	// bcrypt ignores input past 72 bytes, so longer passwords could match a shorter stored one.
	if len(password) > maxPasswordBytes {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(truncate(password)))
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	token, err := s.tokens.Issue(credential.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func truncate(password string) string {
	if len(password) > maxPasswordBytes {
		return password[:maxPasswordBytes]
	}
	return password
}

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}
	return nil
}

func sanitize(c *domain.Credential) *domain.Credential {
	if c == nil {
		return nil
	}
	copy := *c
	copy.PasswordHash = ""
	return &copy
}
