package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahirash.com/app/internal/config"
)

func TestValidateKey(t *testing.T) {
	for _, ok := range []string{"cart/abc", "wishlist/0b1d7a5e-3c2f-4f5e-9c1a-6b0a2d9e1f00"} {
		assert.NoError(t, ValidateKey(ok), ok)
	}
	for _, bad := range []string{"", "cart", "cart/", "cart/../etc", "../cart/x", "Cart/x", "cart/a/b", "cart/a.b"} {
		assert.ErrorIs(t, ValidateKey(bad), ErrInvalidKey, bad)
	}
}

func exercise(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "cart/c1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "cart/c1", []byte(`[1]`)))
	require.NoError(t, s.Put(ctx, "cart/c1", []byte(`[1,2]`)))
	got, err := s.Get(ctx, "cart/c1")
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(got))

	require.NoError(t, s.Delete(ctx, "cart/c1"))
	require.NoError(t, s.Delete(ctx, "cart/c1"), "deleting twice is fine")
	_, err = s.Get(ctx, "cart/c1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Put(ctx, "../escape", []byte(`x`)), ErrInvalidKey)
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestLocal(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir)
	exercise(t, l)

	require.NoError(t, l.Put(context.Background(), "wishlist/w1", []byte(`{}`)))
	_, err := os.Stat(filepath.Join(dir, "wishlist", "w1.json"))
	assert.NoError(t, err)

	leftovers, _ := filepath.Glob(filepath.Join(dir, "wishlist", ".tmp-*"))
	assert.Empty(t, leftovers)
}

func TestFromConfig(t *testing.T) {
	ctx := context.Background()

	res, err := FromConfig(ctx, config.StorageConfig{Driver: "memory"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "memory", res.Driver)

	res, err = FromConfig(ctx, config.StorageConfig{LocalDir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.Equal(t, "local", res.Driver)

	_, err = FromConfig(ctx, config.StorageConfig{Driver: "sql"}, nil)
	assert.Error(t, err)
	_, err = FromConfig(ctx, config.StorageConfig{Driver: "s3"}, nil)
	assert.Error(t, err)
	_, err = FromConfig(ctx, config.StorageConfig{Driver: "floppy"}, nil)
	assert.Error(t, err)
}
