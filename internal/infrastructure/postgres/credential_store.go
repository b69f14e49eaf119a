package postgres

import (
	"context"
	"errors"

	domain "github.com/RealMosam/SEMS/internal/domain/auth"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CredentialStore persists credentials in PostgreSQL.
type CredentialStore struct {
	pool *pgxpool.Pool
}

// NewCredentialStore constructs a store.
func NewCredentialStore(pool *pgxpool.Pool) *CredentialStore {
	return &CredentialStore{pool: pool}
}

// Insert stores a credential. The UNIQUE constraint on username decides races.
func (s *CredentialStore) Insert(ctx context.Context, credential *domain.Credential) error {
	const query = `
INSERT INTO credentials (id, username, password_hash, created_at)
VALUES ($1, $2, $3, $4)
`
	_, err := s.pool.Exec(ctx, query,
		credential.ID,
		credential.Username,
		credential.PasswordHash,
		credential.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameExists
		}
		return err
	}
	return nil
}

// Find fetches a credential by username.
func (s *CredentialStore) Find(ctx context.Context, username string) (*domain.Credential, error) {
	const query = `
SELECT id, username, password_hash, created_at
FROM credentials WHERE username = $1
`
	var c domain.Credential
	err := s.pool.QueryRow(ctx, query, username).Scan(
		&c.ID,
		&c.Username,
		&c.PasswordHash,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, err
	}
	return &c, nil
}

var _ domain.CredentialStore = (*CredentialStore)(nil)
