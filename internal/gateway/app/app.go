package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"slidegen/internal/gateway/config"
	"slidegen/internal/gateway/handler"
	"slidegen/internal/gateway/server"
	"slidegen/internal/generation"
	"slidegen/internal/infographic"
	"slidegen/internal/llm"
	"slidegen/internal/logging"
	"slidegen/internal/store"
	"slidegen/internal/tools"
)

type App struct {
	server  *server.Server
	logger  *zap.Logger
	closers []func() error
}

func New(ctx context.Context, args []string) (*App, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return NewWithConfig(ctx, cfg, logger)
}

// NewWithConfig wires the gateway from an already loaded config.
func NewWithConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)
	a := &App{logger: logger}

	// Dependencies
	blobs, closeStore, err := store.Open(ctx, store.Config{
		DatabaseURL: cfg.DatabaseURL,
		S3:          cfg.Artifact,
		Dir:         cfg.ArtifactDir,
		Cache:       store.DefaultCacheConfig(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}
	a.closers = append(a.closers, closeStore)

	client, err := llm.New(ctx, cfg.LLM, logger)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to init llm client: %w", err)
	}
	if client == nil {
		logger.Info("no LLM provider configured, serving demo content")
	} else {
		logger.Info("llm client ready", zap.String("client", client.Name()))
		a.closers = append(a.closers, client.Close)
	}

	gen := generation.New(client, blobs, logger,
		generation.WithMaxAttempts(cfg.MaxAttempts),
		generation.WithStructureCache(infographic.NewStructureCache(cfg.StructureCacheSize, cfg.StructureCacheTTL)),
	)
	aiTools := tools.New(client, logger, tools.WithChunkDelay(cfg.DemoChunkDelay))
	h := handler.New(gen, generation.NewTemplates(blobs), aiTools, logger)

	// Routing & Server
	a.server = server.New(cfg.Port, server.NewMux(h, logger), logger)
	return a, nil
}

func (a *App) Logger() *zap.Logger { return a.logger }

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	return errors.Join(err, a.close())
}

func (a *App) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	_ = a.logger.Sync()
	return errors.Join(errs...)
}
