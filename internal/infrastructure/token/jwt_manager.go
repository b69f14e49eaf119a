package token

import (
	"errors"
	"fmt"
	"time"

	domain "github.com/RealMosam/SEMS/internal/domain/auth"
	usecase "github.com/RealMosam/SEMS/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinSecretLength is the shortest HS256 key accepted, in bytes.
const MinSecretLength = 32

// Config is the shared signing configuration. It must be identical on the
// issuer and on every verifier.
type Config struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
	// Leeway tolerates clock skew between the issuer and a verifier when
	// checking exp, nbf and iat.
	Leeway time.Duration
}

// Validate rejects configurations that would let tokens be forged or never expire.
func (c Config) Validate() error {
	switch {
	case len(c.Secret) == 0:
		return errors.New("token secret is required")
	case len(c.Secret) < MinSecretLength:
		return fmt.Errorf("token secret must be at least %d bytes", MinSecretLength)
	case c.Issuer == "":
		return errors.New("token issuer is required")
	case c.Audience == "":
		return errors.New("token audience is required")
	case c.TTL <= 0:
		return errors.New("token ttl must be positive")
	case c.Leeway < 0:
		return errors.New("token leeway must not be negative")
	}
	return nil
}

// Option customises a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

// Manager issues and validates HS256 JWT tokens.
type Manager struct {
	cfg     Config
	nowFunc func() time.Time
	parser  *jwt.Parser
}

// Ensure Manager implements the TokenManager interface.
var _ usecase.TokenManager = (*Manager)(nil)

// NewManager constructs a manager from a validated configuration.
func NewManager(cfg Config, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	cfg.Secret = secret

	m := &Manager{
		cfg:     cfg,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(cfg.Leeway),
		jwt.WithTimeFunc(func() time.Time { return m.nowFunc() }),
	)
	return m, nil
}

// Issue creates a signed JWT asserting the subject.
func (m *Manager) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}
	now := m.nowFunc().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    m.cfg.Issuer,
		Audience:  jwt.ClaimStrings{m.cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.cfg.Secret)
}

// Validate parses and validates the token, returning its claims when valid.
// Every failure wraps domain.ErrTokenInvalid.
func (m *Manager) Validate(tokenString string) (*domain.Claims, error) {
	var claims jwt.RegisteredClaims
	token, err := m.parser.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.cfg.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrTokenInvalid)
	}

	out := &domain.Claims{
		Subject:  claims.Subject,
		Issuer:   claims.Issuer,
		Audience: []string(claims.Audience),
		ID:       claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// TTL returns the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL
}
