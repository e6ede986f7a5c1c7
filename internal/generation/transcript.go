package generation

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"slidegen/internal/llm"
)

// exchange is one model call seen by a transcript.
type exchange struct {
	Phase  string
	Prompt string
	Reply  string
	Err    error
}

// transcript records every prompt and reply of one run. The persisted
// prompt.txt and response.txt come from its last exchange.
type transcript struct {
	logger *zap.Logger

	mu        sync.Mutex
	exchanges []exchange
}

var _ llm.PromptHook = (*transcript)(nil)

func newTranscript(logger *zap.Logger) *transcript {
	return &transcript{logger: logger}
}

func (t *transcript) Before(_ context.Context, phase string, req llm.Request) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.exchanges = append(t.exchanges, exchange{Phase: phase, Prompt: req.Prompt})
}

func (t *transcript) After(_ context.Context, phase string, reply string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := len(t.exchanges); n > 0 {
		t.exchanges[n-1].Reply = reply
		t.exchanges[n-1].Err = err
	}
	t.logger.Debug("model exchange",
		zap.String("phase", phase),
		zap.Int("call", len(t.exchanges)),
		zap.Int("reply_bytes", len(reply)),
		zap.Error(err))
}

// last returns the most recent exchange.
func (t *transcript) last() (exchange, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.exchanges) == 0 {
		return exchange{}, false
	}
	return t.exchanges[len(t.exchanges)-1], true
}
