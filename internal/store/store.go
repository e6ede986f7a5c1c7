// Package store persists templates and generation artifacts as opaque blobs
// keyed by (namespace, path).
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store defines operations for persisting blobs under a namespace.
type Store interface {
	Put(ctx context.Context, namespace, path string, content []byte) error
	Get(ctx context.Context, namespace, path string) ([]byte, error)
	GetURL(ctx context.Context, namespace, path string) (string, error)
	List(ctx context.Context, namespace string) ([]string, error)
}

var ErrNotFound = errors.New("store: not found")

// TemplatesNamespace holds saved templates as <id>.json.
const TemplatesNamespace = "templates"

func normalizeKey(namespace, path string) (string, string, error) {
	namespace = strings.TrimSpace(namespace)
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if namespace == "" {
		return "", "", fmt.Errorf("namespace is required")
	}
	if path == "" {
		return "", "", fmt.Errorf("path is required")
	}
	return namespace, path, nil
}

func normalizeNamespace(namespace string) (string, error) {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return "", fmt.Errorf("namespace is required")
	}
	return namespace, nil
}

func objectKey(namespace, path string) string {
	return namespace + "/" + path
}
