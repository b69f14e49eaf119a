package auth

import domain "github.com/RealMosam/SEMS/internal/domain/auth"

// TokenIssuer mints signed tokens for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// TokenValidator verifies a presented token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*domain.Claims, error)
}

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	TokenIssuer
	TokenValidator
}
