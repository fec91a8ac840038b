package memory

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	repo := NewSessionRepo()
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Save(ctx, &domain.Session{Token: "t1", Username: "admin"}, time.Hour))

	s, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "admin", s.Username)

	now = now.Add(time.Hour)
	_, err = repo.Get(ctx, "t1")
	require.ErrorIs(t, err, e.ErrNotFound)
}

func TestSessionRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo()

	require.NoError(t, repo.Save(ctx, &domain.Session{Token: "t1"}, time.Hour))
	require.NoError(t, repo.Delete(ctx, "t1"))
	require.NoError(t, repo.Delete(ctx, "missing"))

	_, err := repo.Get(ctx, "t1")
	require.ErrorIs(t, err, e.ErrNotFound)
}
