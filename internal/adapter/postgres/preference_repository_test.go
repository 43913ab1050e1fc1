package postgres

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"mesa-console/internal/config/configs"
	"mesa-console/internal/core/port"
	"mesa-console/internal/db"
)

// startPostgres runs a throwaway PostgreSQL container and returns its
// connection URL.
func startPostgres(t *testing.T) url.URL {
	t.Helper()
	if testing.Short() {
		t.Skip("container test skipped in short mode")
	}
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "mesa",
				"POSTGRES_PASSWORD": "mesa",
				"POSTGRES_DB":       "mesa",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword("mesa", "mesa"),
		Host:     fmt.Sprintf("%s:%s", host, mapped.Port()),
		Path:     "/mesa",
		RawQuery: "sslmode=disable",
	}
}

func newRepo(t *testing.T) *PreferenceRepository {
	t.Helper()
	addr := startPostgres(t)
	require.NoError(t, db.Migrate(addr.String()))

	pool, err := db.NewPostgresPool(context.Background(), configs.Postgres{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewPreferenceRepository(pool)
}

func TestPreferenceRepository(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	t.Run("missing key", func(t *testing.T) {
		_, err := repo.Get(ctx, "s1", "token")
		assert.ErrorIs(t, err, port.ErrPreferenceNotFound)

		all, err := repo.Load(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("upsert and load", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "s2", "token", "abc"))
		require.NoError(t, repo.Set(ctx, "s2", "token", "def"))
		require.NoError(t, repo.Set(ctx, "s2", "theme", "dark"))
		require.NoError(t, repo.Set(ctx, "other", "theme", "light"))

		v, err := repo.Get(ctx, "s2", "token")
		require.NoError(t, err)
		assert.Equal(t, "def", v)

		all, err := repo.Load(ctx, "s2")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"token": "def", "theme": "dark"}, all)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "s3", "language", "es"))
		require.NoError(t, repo.Delete(ctx, "s3", "language"))
		require.NoError(t, repo.Delete(ctx, "s3", "language"))

		_, err := repo.Get(ctx, "s3", "language")
		assert.ErrorIs(t, err, port.ErrPreferenceNotFound)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, repo.Set(ctx, "s4", "theme", fmt.Sprintf("v%d", i)))
			}(i)
		}
		wg.Wait()

		all, err := repo.Load(ctx, "s4")
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}
