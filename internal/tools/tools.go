// Package tools implements the editor's streaming AI tools: presentation
// outlines, outline-to-slides conversion and text rewriting. Without an LLM
// client each tool fabricates deterministic demo output.
package tools

import (
	"context"
	"time"

	"go.uber.org/zap"

	"slidegen/internal/llm"
)

// Phases tag the LLM calls of each tool.
const (
	PhaseOutline = "aippt_outline"
	PhaseSlides  = "aippt"
	PhaseWriting = "ai_writing"
)

const (
	defaultLanguage = "中文"
	defaultTopic    = "未命名主题"
	defaultTitle    = "未命名演示文稿"
	defaultStyle    = "通用"
	defaultCommand  = "美化改写"
)

// Emit receives one stream chunk. A non-nil error, typically from a client
// that went away, stops the tool.
type Emit func(chunk string) error

type Tools struct {
	client llm.LLMClient
	delay  time.Duration
	logger *zap.Logger
}

type Option func(*Tools)

// WithChunkDelay paces demo output. Model output is never delayed.
func WithChunkDelay(d time.Duration) Option {
	return func(t *Tools) {
		if d > 0 {
			t.delay = d
		}
	}
}

// New builds the tools. A nil client selects demo output.
func New(client llm.LLMClient, logger *zap.Logger, opts ...Option) *Tools {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tools{client: client, logger: logger.Named("tools")}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// emitAll writes chunks in order, pausing between them.
func (t *Tools) emitAll(ctx context.Context, chunks []string, emit Emit) error {
	for i, c := range chunks {
		if i > 0 {
			if err := t.pause(ctx); err != nil {
				return err
			}
		}
		if err := emit(c); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tools) pause(ctx context.Context) error {
	if t.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(t.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (t *Tools) stream(ctx context.Context, phase, prompt string, emit Emit) error {
	_, err := t.client.Stream(llm.WithPhase(ctx, phase), llm.Request{Prompt: prompt}, func(chunk string) error {
		return emit(chunk)
	})
	return err
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
