package llm

import "context"

// PromptHook observes requests made under a phase.
type PromptHook interface {
	Before(ctx context.Context, phase string, req Request)
	After(ctx context.Context, phase string, reply string, err error)
}

type ctxKeyHook struct{}
type ctxKeyPhase struct{}

// WithHook returns a client that attaches hook to the context of every call,
// where the WithHooks middleware picks it up.
func WithHook(base LLMClient, hook PromptHook) LLMClient {
	return &hookAttached{base: base, hook: hook}
}

type hookAttached struct {
	base LLMClient
	hook PromptHook
}

func (h *hookAttached) Name() string { return h.base.Name() }
func (h *hookAttached) Close() error { return h.base.Close() }

func (h *hookAttached) Generate(ctx context.Context, req Request) (string, error) {
	return h.base.Generate(context.WithValue(ctx, ctxKeyHook{}, h.hook), req)
}

func (h *hookAttached) Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error) {
	return h.base.Stream(context.WithValue(ctx, ctxKeyHook{}, h.hook), req, onChunk)
}

// WithPhase labels calls made with ctx. Phases select fake replies, and show
// up in logs and hooks.
func WithPhase(ctx context.Context, phase string) context.Context {
	return context.WithValue(ctx, ctxKeyPhase{}, phase)
}

// HookFrom returns the hook stored in the context.
func HookFrom(ctx context.Context) PromptHook {
	if v := ctx.Value(ctxKeyHook{}); v != nil {
		if h, ok := v.(PromptHook); ok {
			return h
		}
	}
	return nil
}

// PhaseFrom returns the phase string stored in the context.
func PhaseFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyPhase{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}
