package auth

import "context"

// CredentialStore defines persistence operations for credentials.
//
// Insert must reject a duplicate username with ErrUsernameExists atomically,
// so two concurrent registrations can never both succeed.
type CredentialStore interface {
	Find(ctx context.Context, username string) (*Credential, error)
	Insert(ctx context.Context, credential *Credential) error
}
