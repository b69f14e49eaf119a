package auth_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	domain "github.com/RealMosam/SEMS/internal/domain/auth"
	"github.com/RealMosam/SEMS/internal/infrastructure/memory"
	"github.com/RealMosam/SEMS/internal/infrastructure/token"
	"github.com/RealMosam/SEMS/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store   *memory.CredentialStore
	tokens  *token.Manager
	service *auth.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	tokens, err := token.NewManager(token.Config{
		Secret:   []byte(strings.Repeat("k", token.MinSecretLength)),
		Issuer:   "https://localhost:44375",
		Audience: "Admin",
		TTL:      time.Hour,
	})
	require.NoError(t, err)

	store := memory.NewCredentialStore()
	svc, err := auth.NewService(store, tokens, auth.WithHashCost(bcrypt.MinCost))
	require.NoError(t, err)

	return fixture{store: store, tokens: tokens, service: svc}
}

func TestRegisterThenAuthenticate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	cred, err := f.service.Register(ctx, "mosam", "test@123")
	require.NoError(t, err)
	assert.Equal(t, "mosam", cred.Username)
	assert.Empty(t, cred.PasswordHash)
	assert.NotEmpty(t, cred.ID)

	stored, err := f.store.Find(ctx, "mosam")
	require.NoError(t, err)
	assert.NotEqual(t, "test@123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("test@123")))

	tok, err := f.service.Authenticate(ctx, "mosam", "test@123")
	require.NoError(t, err)

	claims, err := f.tokens.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "mosam", claims.Subject)
	assert.Equal(t, "https://localhost:44375", claims.Issuer)
	assert.Contains(t, claims.Audience, "Admin")
}

func TestAuthenticate_Failures(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	_, err := f.service.Register(ctx, "mosam", "test@123")
	require.NoError(t, err)
	maxLen := strings.Repeat("p", 72)
	_, err = f.service.Register(ctx, "long", maxLen)
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "mosam", "wrong"},
		{"unknown user", "ghost", "test@123"},
		{"case differs", "Mosam", "test@123"},
		{"empty password", "mosam", ""},
		{"empty username", "", "test@123"},
		{"suffix past bcrypt limit", "long", maxLen + "EXTRA"},
		{"unknown user long password", "ghost", maxLen + "EXTRA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := f.service.Authenticate(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.Empty(t, tok)
		})
	}
	tok, err := f.service.Authenticate(ctx, "long", maxLen)
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "mosam", "test@123")
	require.NoError(t, err)

	_, err = f.service.Register(ctx, "mosam", "other-password")
	require.ErrorIs(t, err, domain.ErrUsernameExists)

	_, err = f.service.Authenticate(ctx, "mosam", "test@123")
	assert.NoError(t, err)
	_, err = f.service.Authenticate(ctx, "mosam", "other-password")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"blank username", "   ", "secret"},
		{"empty password", "mosam", ""},
		{"password too long", "mosam", strings.Repeat("p", 73)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Register(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegister_ConcurrentDuplicates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	const workers = 16
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := f.service.Register(ctx, "racer", "pw")
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, domain.ErrUsernameExists):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())
}

func TestRoundTrip_UnusualUsernames(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	for _, username := range []string{"user name", "ünïcødé", "a\"b", "emoji-🏆", " padded "} {
		_, err := f.service.Register(ctx, username, "pw")
		require.NoError(t, err, username)

		tok, err := f.service.Authenticate(ctx, username, "pw")
		require.NoError(t, err, username)

		claims, err := f.tokens.Validate(tok)
		require.NoError(t, err)
		assert.Equal(t, username, claims.Subject)
	}
}

type failingStore struct{ err error }

func (s failingStore) Find(context.Context, string) (*domain.Credential, error) { return nil, s.err }
func (s failingStore) Insert(context.Context, *domain.Credential) error         { return s.err }

func TestStoreErrorsPropagate(t *testing.T) {
	t.Parallel()

	boom := errors.New("storage offline")
	f := newFixture(t)
	svc, err := auth.NewService(failingStore{err: boom}, f.tokens, auth.WithHashCost(bcrypt.MinCost))
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "mosam", "test@123")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Register(context.Background(), "mosam", "test@123")
	assert.ErrorIs(t, err, boom)
}

func TestNewService_RequiresDependencies(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := auth.NewService(nil, f.tokens)
	assert.Error(t, err)
	_, err = auth.NewService(f.store, nil)
	assert.Error(t, err)
}
