package memory

import (
	"context"
	"sync"

	domain "github.com/RealMosam/SEMS/internal/domain/auth"
)

// CredentialStore keeps credentials in process memory.
type CredentialStore struct {
	mu          sync.RWMutex
	credentials map[string]domain.Credential
}

// NewCredentialStore creates an empty credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		credentials: make(map[string]domain.Credential),
	}
}

// Find returns the credential registered for username.
func (s *CredentialStore) Find(_ context.Context, username string) (*domain.Credential, error) {
	s.mu.RLock()
	credential, ok := s.credentials[username]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrCredentialNotFound
	}
	return &credential, nil
}

// Insert stores credential unless its username is already taken.
func (s *CredentialStore) Insert(_ context.Context, credential *domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.credentials[credential.Username]; exists {
		return domain.ErrUsernameExists
	}
	s.credentials[credential.Username] = *credential
	return nil
}

var _ domain.CredentialStore = (*CredentialStore)(nil)
