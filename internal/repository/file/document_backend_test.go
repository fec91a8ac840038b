package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/repository/document"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentBackend_MissingFile(t *testing.T) {
	b := NewDocumentBackend(t.TempDir(), "orders")

	data, version, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Empty(t, version)
}

func TestDocumentBackend_VersionCheck(t *testing.T) {
	ctx := context.Background()
	b := NewDocumentBackend(t.TempDir(), "orders")

	require.NoError(t, b.Store(ctx, []byte(`[1]`), ""))
	_, v1, err := b.Load(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, v1)

	require.ErrorIs(t, b.Store(ctx, []byte(`[2]`), ""), e.ErrVersionConflict)
	require.NoError(t, b.Store(ctx, []byte(`[1,2]`), v1))
	require.ErrorIs(t, b.Store(ctx, []byte(`[3]`), v1), e.ErrVersionConflict)

	data, _, err := b.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(data))
}

func TestDocumentBackend_FileName(t *testing.T) {
	dir := t.TempDir()
	b := NewDocumentBackend(dir, "settings:video")

	require.NoError(t, b.Store(context.Background(), []byte(`{}`), ""))
	_, err := os.Stat(filepath.Join(dir, "settings-video.json"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not remain")
}

func TestDocumentBackend_WithStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	orders := document.NewStore[[]domain.Order]("orders", NewDocumentBackend(dir, "orders"), logger.Nop{})
	_, err := orders.Mutate(ctx, func(list *[]domain.Order) error {
		*list = append(*list, domain.Order{ID: "ORDER-1", Status: domain.StatusNew})
		return nil
	})
	require.NoError(t, err)

	reopened := document.NewStore[[]domain.Order]("orders", NewDocumentBackend(dir, "orders"), logger.Nop{})
	got, err := reopened.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ORDER-1", got[0].ID)
}
