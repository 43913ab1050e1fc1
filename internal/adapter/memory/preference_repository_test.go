package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-console/internal/core/port"
)

func TestPreferenceRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferenceRepository()

	_, err := repo.Get(ctx, "s1", "theme")
	assert.ErrorIs(t, err, port.ErrPreferenceNotFound)

	require.NoError(t, repo.Set(ctx, "s1", "theme", "dark"))
	require.NoError(t, repo.Set(ctx, "s1", "language", "es"))
	require.NoError(t, repo.Set(ctx, "s2", "theme", "light"))

	v, err := repo.Get(ctx, "s1", "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	all, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"theme": "dark", "language": "es"}, all)

	all["theme"] = "mutated"
	v, _ = repo.Get(ctx, "s1", "theme")
	assert.Equal(t, "dark", v)

	require.NoError(t, repo.Delete(ctx, "s1", "theme"))
	require.NoError(t, repo.Delete(ctx, "missing", "theme"))
	_, err = repo.Get(ctx, "s1", "theme")
	assert.ErrorIs(t, err, port.ErrPreferenceNotFound)

	empty, err := repo.Load(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
