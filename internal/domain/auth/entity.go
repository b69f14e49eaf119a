package auth

import (
	"errors"
	"time"
)

var (
	// ErrUnauthorized indicates a failed authentication attempt.
	ErrUnauthorized = errors.New("invalid username or password")
	// ErrUsernameExists signals a duplicate registration.
	ErrUsernameExists = errors.New("username already exists")
	// ErrCredentialNotFound indicates no credential is stored for a username.
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrTokenInvalid means a supplied token cannot be validated.
	ErrTokenInvalid = errors.New("token invalid or expired")
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// Credential models the login record persisted by the credential store.
type Credential struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Claims is the identity asserted by a validated token.
type Claims struct {
	Subject   string    `json:"subject"`
	Issuer    string    `json:"issuer"`
	Audience  []string  `json:"audience"`
	ID        string    `json:"id,omitempty"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
