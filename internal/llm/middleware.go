package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Middleware decorates an LLMClient to inject cross-cutting concerns
// (rate limiting, retries, logging, hooks, etc.).
type Middleware func(LLMClient) LLMClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner LLMClient, mws ...Middleware) LLMClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// -------- Rate limiting --------

// RateLimit limits calls to rps per second with the given burst. Every call
// that reaches the next client consumes a token. rps <= 0 disables it.
func RateLimit(rps float64, burst int) Middleware {
	return func(next LLMClient) LLMClient {
		if rps <= 0 {
			return next
		}
		if burst <= 0 {
			burst = 1
		}
		return &rateLimited{next: next, lim: rate.NewLimiter(rate.Limit(rps), burst)}
	}
}

type rateLimited struct {
	next LLMClient
	lim  *rate.Limiter
}

func (c *rateLimited) Name() string { return c.next.Name() }
func (c *rateLimited) Close() error { return c.next.Close() }

func (c *rateLimited) Generate(ctx context.Context, req Request) (string, error) {
	if err := c.lim.Wait(ctx); err != nil {
		return "", err
	}
	return c.next.Generate(ctx, req)
}

func (c *rateLimited) Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error) {
	if err := c.lim.Wait(ctx); err != nil {
		return "", err
	}
	return c.next.Stream(ctx, req, onChunk)
}

// -------- Timeout --------

// Timeout bounds each call, including a whole stream. d <= 0 disables it.
func Timeout(d time.Duration) Middleware {
	return func(next LLMClient) LLMClient {
		if d <= 0 {
			return next
		}
		return &timeboxed{next: next, d: d}
	}
}

type timeboxed struct {
	next LLMClient
	d    time.Duration
}

func (c *timeboxed) Name() string { return c.next.Name() }
func (c *timeboxed) Close() error { return c.next.Close() }

func (c *timeboxed) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.d)
	defer cancel()
	return c.next.Generate(ctx, req)
}

func (c *timeboxed) Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.d)
	defer cancel()
	return c.next.Stream(ctx, req, onChunk)
}

// -------- Logging & Hooks --------

// WithLogging logs request size, latency and errors. A nil logger disables it.
func WithLogging(logger *zap.Logger) Middleware {
	return func(next LLMClient) LLMClient {
		if logger == nil {
			return next
		}
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next LLMClient
	log  *zap.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) Generate(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	l.log.Debug("LLM request",
		zap.String("client", l.next.Name()),
		zap.String("phase", PhaseFrom(ctx)),
		zap.Int("bytes", len(req.Prompt)))
	out, err := l.next.Generate(ctx, req)
	l.done(ctx, "LLM response", start, out, err)
	return out, err
}

func (l *logging) Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error) {
	start := time.Now()
	l.log.Debug("LLM stream request",
		zap.String("client", l.next.Name()),
		zap.String("phase", PhaseFrom(ctx)),
		zap.Int("bytes", len(req.Prompt)))
	out, err := l.next.Stream(ctx, req, onChunk)
	l.done(ctx, "LLM stream response", start, out, err)
	return out, err
}

func (l *logging) done(ctx context.Context, msg string, start time.Time, out string, err error) {
	fields := []zap.Field{
		zap.String("client", l.next.Name()),
		zap.String("phase", PhaseFrom(ctx)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		l.log.Warn("LLM error", append(fields, zap.Error(err))...)
		return
	}
	l.log.Info(msg, append(fields, zap.Int("bytes", len(out)))...)
}

// WithHooks calls HookFrom(ctx).Before/After around each call.
// If no hook is present in the context, it is a no-op.
func WithHooks() Middleware {
	return func(next LLMClient) LLMClient {
		return &hooked{next: next}
	}
}

type hooked struct{ next LLMClient }

func (h *hooked) Name() string { return h.next.Name() }
func (h *hooked) Close() error { return h.next.Close() }

func (h *hooked) Generate(ctx context.Context, req Request) (string, error) {
	hook := HookFrom(ctx)
	if hook != nil {
		hook.Before(ctx, PhaseFrom(ctx), req)
	}
	out, err := h.next.Generate(ctx, req)
	if hook != nil {
		hook.After(ctx, PhaseFrom(ctx), out, err)
	}
	return out, err
}

func (h *hooked) Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error) {
	hook := HookFrom(ctx)
	if hook != nil {
		hook.Before(ctx, PhaseFrom(ctx), req)
	}
	out, err := h.next.Stream(ctx, req, onChunk)
	if hook != nil {
		hook.After(ctx, PhaseFrom(ctx), out, err)
	}
	return out, err
}
