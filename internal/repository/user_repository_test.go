package repository_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/admin-panel-backend/internal/model"
	"github.com/stemsi/admin-panel-backend/internal/repository"
)

// newPostgresStore connects to TEST_DATABASE_URL, applies the users
// migration and empties the table. Tests are skipped without it.
func newPostgresStore(t *testing.T) *repository.UserRepository {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../migrations/000001_create_users.up.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS users`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	return repository.NewUserRepository(pool)
}

func TestPostgresCreateGetDuplicate(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	u := newUser("pg@example.com", model.RoleTeacher, false, now)
	require.NoError(t, store.Create(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := store.GetByEmail(ctx, "pg@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, model.RoleTeacher, got.Role)
	assert.False(t, got.IsApproved)

	err = store.Create(ctx, newUser("pg@example.com", model.RoleStudent, false, now))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	_, err = store.GetByID(ctx, u.ID+1000)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostgresStatsAndDelete(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	admin := newUser("a@example.com", model.RoleAdmin, true, now)
	require.NoError(t, store.Create(ctx, admin))
	require.NoError(t, store.Create(ctx, newUser("t@example.com", model.RoleTeacher, false, now.Add(time.Second))))
	require.NoError(t, store.Create(ctx, newUser("s@example.com", model.RoleStudent, true, now.Add(2*time.Second))))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.UserStats{Total: 3, Admins: 1, Teachers: 1, Students: 1, Pending: 1}, *stats)

	users, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "s@example.com", users[0].Email)

	require.NoError(t, store.Delete(ctx, admin.ID))
	assert.ErrorIs(t, store.Delete(ctx, admin.ID), repository.ErrNotFound)
}

func TestPostgresAtomicSerializes(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()

	// Each worker inserts only if the table is empty; the advisory lock
	// must let exactly one of them win.
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.Atomic(ctx, func(tx repository.UserStore) error {
				n, err := tx.Count(ctx)
				if err != nil {
					return err
				}
				if n > 0 {
					return nil
				}
				u := newUser("first@example.com", model.RoleAdmin, true, time.Now().UTC())
				u.Email = "first-" + string(rune('a'+i)) + "@example.com"
				if err := tx.Create(ctx, u); err != nil {
					return err
				}
				mu.Lock()
				created++
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPostgresAtomicRollsBack(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Atomic(ctx, func(tx repository.UserStore) error {
		require.NoError(t, tx.Create(ctx, newUser("r@example.com", model.RoleStudent, false, time.Now().UTC())))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.GetByEmail(ctx, "r@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
