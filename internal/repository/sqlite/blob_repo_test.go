package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBlobLoadMissingKey(t *testing.T) {
	repo := NewBlobRepo(testDB(t))

	value, err := repo.Load(context.Background(), "orders")
	assert.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestBlobSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewBlobRepo(testDB(t))

	require.NoError(t, repo.Save(ctx, "orders", `[{"id":"1"}]`))

	value, err := repo.Load(ctx, "orders")
	assert.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, value)
}

func TestBlobSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewBlobRepo(testDB(t))

	require.NoError(t, repo.Save(ctx, "diag_history", "[]"))
	require.NoError(t, repo.Save(ctx, "diag_history", `[{"client":"A"}]`))

	value, err := repo.Load(ctx, "diag_history")
	assert.NoError(t, err)
	assert.Equal(t, `[{"client":"A"}]`, value)
}

func TestBlobKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := NewBlobRepo(testDB(t))

	require.NoError(t, repo.Save(ctx, "orders", "a"))
	require.NoError(t, repo.Save(ctx, "diag_history", "b"))

	orders, err := repo.Load(ctx, "orders")
	assert.NoError(t, err)
	diags, err := repo.Load(ctx, "diag_history")
	assert.NoError(t, err)
	assert.Equal(t, "a", orders)
	assert.Equal(t, "b", diags)
}
