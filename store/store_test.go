package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlbook/tabular-rl/types"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	values := types.NewValueTable()
	values.Set("(0, 0)", 3.3)
	values.Set("(0, 1)", 8.8)
	require.NoError(t, fs.Save(ctx, "values", values))

	restored := types.NewValueTable()
	require.NoError(t, fs.Load(ctx, "values", restored))
	assert.Equal(t, 8.8, restored.Get("(0, 1)", 0))
	assert.Equal(t, float64(0), values.Diff(restored))
}

func TestFileStoreQTable(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	q := types.NewQTable()
	q.Set("s", "Up", 1.5)
	q.Set("s", "Down", -0.25)
	require.NoError(t, fs.Save(ctx, "qtable", q))

	restored := types.NewQTable()
	require.NoError(t, fs.Load(ctx, "qtable", restored))
	assert.Equal(t, 1.5, restored.Get("s", "Up", 0))
	assert.Equal(t, -0.25, restored.Get("s", "Down", 0))
}

func TestFileStoreList(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, "beta", types.NewValueTable()))
	require.NoError(t, fs.Save(ctx, "alpha", types.NewValueTable()))

	names, err := fs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	bs, err := fs.Raw("alpha")
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(bs))
}

func TestFileStoreMissingTable(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	err = fs.Load(context.Background(), "nope", types.NewValueTable())
	assert.Error(t, err)
}
