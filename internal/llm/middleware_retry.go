package llm

import (
	"context"
	"errors"
	"time"
)

// RetryAfterError carries a provider-requested wait before the next attempt.
type RetryAfterError struct {
	Wait time.Duration
	Err  error
}

func (e *RetryAfterError) Error() string { return e.Err.Error() }
func (e *RetryAfterError) Unwrap() error { return e.Err }

// Retry retries failed calls up to maxAttempts with exponential backoff
// starting at baseDelay. Permanent errors are returned at once, and so is
// any error after the context is canceled. A stream is only retried when it
// failed before delivering its first chunk.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next LLMClient) LLMClient {
		return &retrying{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	next LLMClient
	max  int
	base time.Duration
}

func (r *retrying) Name() string { return r.next.Name() }
func (r *retrying) Close() error { return r.next.Close() }

func (r *retrying) Generate(ctx context.Context, req Request) (string, error) {
	var last error
	for i := 0; i < r.max; i++ {
		out, err := r.next.Generate(ctx, req)
		if err == nil {
			return out, nil
		}
		if IsPermanent(err) {
			return "", err
		}
		last = err
		if i == r.max-1 {
			break
		}
		if err := r.sleep(ctx, i, err); err != nil {
			return "", err
		}
	}
	return "", last
}

func (r *retrying) Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error) {
	var last error
	for i := 0; i < r.max; i++ {
		delivered := false
		out, err := r.next.Stream(ctx, req, func(chunk string) error {
			delivered = true
			if onChunk == nil {
				return nil
			}
			return onChunk(chunk)
		})
		if err == nil {
			return out, nil
		}
		if delivered || IsPermanent(err) {
			return "", err
		}
		last = err
		if i == r.max-1 {
			break
		}
		if err := r.sleep(ctx, i, err); err != nil {
			return "", err
		}
	}
	return "", last
}

// sleep waits the backoff for attempt, or longer when the provider asked for
// it. It returns the context error if ctx ends first.
func (r *retrying) sleep(ctx context.Context, attempt int, cause error) error {
	wait := r.base * time.Duration(1<<attempt)
	var ra *RetryAfterError
	if errors.As(cause, &ra) && ra.Wait > wait {
		wait = ra.Wait
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
