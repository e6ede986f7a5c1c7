package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"slidegen/internal/safeio"
)

// FileStore keeps blobs as files under root/<namespace>/<path>.
type FileStore struct {
	fs *safeio.SafeFS
}

// NewFileStore creates root if needed and confines all access to it.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	fsys, err := safeio.NewSafeFS(root)
	if err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	return &FileStore{fs: fsys}, nil
}

// Root returns the absolute directory holding the blobs.
func (s *FileStore) Root() string { return s.fs.Root() }

func (s *FileStore) Put(ctx context.Context, namespace, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ns, p, err := normalizeKey(namespace, path)
	if err != nil {
		return err
	}
	dst, err := s.fs.Join(objectKey(ns, p))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}

func (s *FileStore) Get(ctx context.Context, namespace, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ns, p, err := normalizeKey(namespace, path)
	if err != nil {
		return nil, err
	}
	b, err := s.fs.ReadFile(objectKey(ns, p))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

// GetURL returns "": local files have no shareable URL.
func (s *FileStore) GetURL(context.Context, string, string) (string, error) {
	return "", nil
}

// List returns the regular files directly under namespace, sorted.
func (s *FileStore) List(ctx context.Context, namespace string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ns, err := normalizeNamespace(namespace)
	if err != nil {
		return nil, err
	}
	entries, err := s.fs.ReadDir(ns)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && filepath.Ext(e.Name()) != ".tmp" {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}
