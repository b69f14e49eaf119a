package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	authdomain "github.com/RealMosam/SEMS/internal/domain/auth"
	"github.com/RealMosam/SEMS/internal/domain/participation"
	"github.com/RealMosam/SEMS/internal/domain/player"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// Tests that need it are skipped when the variable is unset.
func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := New(ctx, dsn, PoolOptions{MaxConns: 16})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDatabase(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- db.Migrate(ctx)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var count int
	require.NoError(t, db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM schema_migrations WHERE version = $1`, schemaVersion()).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestCredentialStore_InsertFind(t *testing.T) {
	db := openTestDatabase(t)
	ctx := context.Background()
	store := NewCredentialStore(db.Pool)

	username := "user-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(), `DELETE FROM credentials WHERE username = $1`, username)
	})

	first := &authdomain.Credential{ID: uuid.NewString(), Username: username, PasswordHash: "h1", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Insert(ctx, first))

	second := &authdomain.Credential{ID: uuid.NewString(), Username: username, PasswordHash: "h2", CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, store.Insert(ctx, second), authdomain.ErrUsernameExists)

	got, err := store.Find(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "h1", got.PasswordHash)

	_, err = store.Find(ctx, "missing-"+uuid.NewString())
	assert.ErrorIs(t, err, authdomain.ErrCredentialNotFound)
}

func TestPlayerRepository_CRUD(t *testing.T) {
	db := openTestDatabase(t)
	ctx := context.Background()
	repo := NewPlayerRepository(db.Pool)

	now := time.Now().UTC()
	p := &player.Player{
		ID: uuid.NewString(), SportID: 1, Name: "MSD", Age: 37,
		ContactNumber: "9999999990", Email: "msd@gmail.com", Gender: player.GenderMale,
		CreatedAt: now, UpdatedAt: now,
	}
	t.Cleanup(func() { _, _ = db.Pool.Exec(context.Background(), `DELETE FROM players WHERE id = $1`, p.ID) })

	require.NoError(t, repo.Create(ctx, p))
	assert.ErrorIs(t, repo.Create(ctx, p), player.ErrAlreadyExists)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, player.GenderMale, got.Gender)

	got.Age = 38
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 38, got.Age)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, player.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), player.ErrNotFound)
}

func TestParticipationRepository_ConcurrentDecide(t *testing.T) {
	db := openTestDatabase(t)
	ctx := context.Background()
	repo := NewParticipationRepository(db.Pool)

	// An event id no other test or fixture uses.
	eventID := int(uuid.New().ID()&0x3fffffff) + 1000
	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(), `DELETE FROM participations WHERE event_id = $1`, eventID)
	})

	now := time.Now().UTC()
	ids := make([]string, 8)
	for i := range ids {
		ids[i] = uuid.NewString()
		require.NoError(t, repo.Create(ctx, &participation.Participation{
			ID: ids[i], PlayerID: uuid.NewString(), EventID: eventID,
			Status: participation.StatusPending, CreatedAt: now, UpdatedAt: now,
		}))
	}

	first, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	dup := &participation.Participation{
		ID: uuid.NewString(), PlayerID: first.PlayerID, EventID: eventID,
		Status: participation.StatusPending, CreatedAt: now, UpdatedAt: now,
	}
	assert.ErrorIs(t, repo.Create(ctx, dup), participation.ErrDuplicate)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		approved int
		full     int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := repo.Decide(ctx, id, participation.Decision{Status: participation.StatusApproved, Slots: 1, At: time.Now().UTC()})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				approved++
			case errors.Is(err, participation.ErrEventFull):
				full++
			default:
				t.Errorf("decide %s: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, approved)
	assert.Equal(t, len(ids)-1, full)

	var winner string
	for _, id := range ids {
		p, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		if p.Status == participation.StatusApproved {
			winner = id
		}
	}
	require.NotEmpty(t, winner)

	_, err = repo.Decide(ctx, winner, participation.Decision{Status: participation.StatusDeclined, At: time.Now().UTC()})
	assert.ErrorIs(t, err, participation.ErrInvalidTransition)

	_, err = repo.Decide(ctx, uuid.NewString(), participation.Decision{Status: participation.StatusDeclined, At: time.Now().UTC()})
	assert.ErrorIs(t, err, participation.ErrNotFound)
}
