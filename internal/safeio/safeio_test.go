package safeio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeFSReadsUnderRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gen"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gen", "a.txt"), []byte("hello"), 0o644))

	fsys, err := NewSafeFS(dir)
	require.NoError(t, err)

	b, err := fsys.ReadFile("gen/a.txt")
	require.NoError(t, err)
	require.Equal(t, "hello", string(b))

	entries, err := fsys.ReadDir("gen")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = fsys.ReadFile("gen")
	require.Error(t, err)

	_, err = fsys.ReadFile("gen/missing.txt")
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestSafeFSRejectsTraversal(t *testing.T) {
	fsys, err := NewSafeFS(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"../x", "..", "/etc/passwd", "a/../../x"} {
		_, err := fsys.ReadFile(p)
		require.ErrorIs(t, err, ErrTraversal, p)
	}
	_, err = fsys.Join("")
	require.Error(t, err)
}

func TestSafeFSRejectsEscapingSymlink(t *testing.T) {
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret"), []byte("x"), 0o644))
	root := t.TempDir()
	if err := os.Symlink(filepath.Join(outside, "secret"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	fsys, err := NewSafeFS(root)
	require.NoError(t, err)
	_, err = fsys.ReadFile("link")
	require.ErrorIs(t, err, ErrTraversal)
}

func TestNewSafeFSNeedsDirectory(t *testing.T) {
	_, err := NewSafeFS("")
	require.Error(t, err)

	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	_, err = NewSafeFS(f)
	require.Error(t, err)
}
