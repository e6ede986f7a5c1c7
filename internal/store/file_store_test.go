package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileStorePutGetList(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "artifacts")
	s, err := NewFileStore(root)
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "gen-1", "slide.json", []byte(`{"id":"x"}`)))
	require.NoError(t, s.Put(ctx, "gen-1", "/prompt.txt", []byte("p")))
	require.NoError(t, s.Put(ctx, "gen-1", "slide.json", []byte(`{"id":"y"}`)))

	b, err := s.Get(ctx, "gen-1", "slide.json")
	require.NoError(t, err)
	require.Equal(t, `{"id":"y"}`, string(b))

	onDisk, err := os.ReadFile(filepath.Join(root, "gen-1", "prompt.txt"))
	require.NoError(t, err)
	require.Equal(t, "p", string(onDisk))

	names, err := s.List(ctx, "gen-1")
	require.NoError(t, err)
	require.Equal(t, []string{"prompt.txt", "slide.json"}, names)

	names, err = s.List(ctx, "gen-2")
	require.NoError(t, err)
	require.Empty(t, names)

	_, err = s.Get(ctx, "gen-1", "missing.txt")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreStaysUnderRoot(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.Error(t, s.Put(ctx, "..", "x.txt", []byte("x")))
	require.Error(t, s.Put(ctx, "gen", "../../x.txt", []byte("x")))
	_, err = s.Get(ctx, "../..", "etc/passwd")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestOpenUsesDirectory(t *testing.T) {
	s, closeFn, err := Open(context.Background(), Config{Dir: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()
	_, ok := s.origin.(*FileStore)
	require.True(t, ok)
}
