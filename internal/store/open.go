package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Config selects the origin backend. S3 wins when complete, then Postgres
// when DatabaseURL is set, then a local directory when Dir is set. Otherwise
// blobs stay in memory.
type Config struct {
	DatabaseURL string
	S3          S3Config
	Dir         string
	Cache       CacheConfig
}

// Open builds the configured origin wrapped in a CachedStore. The returned
// close func releases the database handle, if any.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*CachedStore, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	closeFn := func() error { return nil }

	var origin Store
	switch {
	case cfg.S3.Complete():
		s3, err := NewS3Store(cfg.S3)
		if err != nil {
			return nil, nil, fmt.Errorf("init s3 store: %w", err)
		}
		logger.Info("artifact store: s3",
			zap.String("bucket", cfg.S3.Bucket),
			zap.String("endpoint", cfg.S3.Endpoint))
		origin = s3
	case strings.TrimSpace(cfg.DatabaseURL) != "":
		db, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("artifact store: postgres")
		origin = NewPostgresStore(db)
		closeFn = closeDB(db)
	case strings.TrimSpace(cfg.Dir) != "":
		fsStore, err := NewFileStore(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("artifact store: directory", zap.String("root", fsStore.Root()))
		origin = fsStore
	default:
		logger.Info("artifact store: in-memory")
		origin = NewMemoryStore()
	}
	return NewCachedStore(origin, cfg.Cache), closeFn, nil
}

func closeDB(db *sql.DB) func() error {
	return func() error { return db.Close() }
}
