package llm

import (
	"context"
	"sync"
)

// FakeCall records one request seen by a FakeClient.
type FakeCall struct {
	Phase  string
	Prompt string
	Stream bool
}

type fakeStep struct {
	text string
	err  error
}

// FakeClient returns scripted replies per phase for offline use and tests.
// A phase's steps are consumed in order and the last one repeats. Phases
// without a script reply "{}".
type FakeClient struct {
	// ChunkSize is the number of runes per streamed chunk.
	ChunkSize int

	mu      sync.Mutex
	scripts map[string][]fakeStep
	calls   []FakeCall
}

func NewFakeClient() *FakeClient {
	return &FakeClient{ChunkSize: 16, scripts: make(map[string][]fakeStep)}
}

// Reply appends a successful reply for phase.
func (f *FakeClient) Reply(phase, text string) *FakeClient {
	return f.push(phase, fakeStep{text: text})
}

// Fail appends a failing reply for phase.
func (f *FakeClient) Fail(phase string, err error) *FakeClient {
	return f.push(phase, fakeStep{err: err})
}

func (f *FakeClient) push(phase string, step fakeStep) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[phase] = append(f.scripts[phase], step)
	return f
}

// Calls returns a copy of the recorded requests.
func (f *FakeClient) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeCall(nil), f.calls...)
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	step := f.next(ctx, req, false)
	return step.text, step.err
}

func (f *FakeClient) Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	step := f.next(ctx, req, true)
	if step.err != nil {
		return "", step.err
	}
	size := f.ChunkSize
	if size <= 0 {
		size = 16
	}
	runes := []rune(step.text)
	for start := 0; start < len(runes); start += size {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		end := min(start+size, len(runes))
		if onChunk != nil {
			if err := onChunk(string(runes[start:end])); err != nil {
				return "", err
			}
		}
	}
	return step.text, nil
}

func (f *FakeClient) next(ctx context.Context, req Request, stream bool) fakeStep {
	phase := PhaseFrom(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, FakeCall{Phase: phase, Prompt: req.Prompt, Stream: stream})
	steps := f.scripts[phase]
	switch len(steps) {
	case 0:
		return fakeStep{text: "{}"}
	case 1:
		return steps[0]
	}
	f.scripts[phase] = steps[1:]
	return steps[0]
}
