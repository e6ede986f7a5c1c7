// Package llm is the text-generation collaborator: a small client interface,
// provider implementations and middleware for cross-cutting concerns.
package llm

import (
	"context"
	"errors"
)

// Request is a single prompt.
type Request struct {
	Prompt string
	// Model overrides the client's default model when set.
	Model string
	// JSON asks the provider for a JSON-only reply where supported.
	JSON bool
}

// LLMClient generates text for a prompt.
//
// Stream delivers the reply in order through onChunk and returns the full
// text. An error from onChunk stops the stream and is returned as is.
type LLMClient interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
	Stream(ctx context.Context, req Request, onChunk func(chunk string) error) (string, error)
	Close() error
}

var ErrEmptyResponse = errors.New("llm: empty response from model")

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err, or an error it wraps, is a PermanentError.
func IsPermanent(err error) bool {
	var pErr *PermanentError
	return errors.As(err, &pErr)
}

// permanentStatus reports whether an HTTP status will fail again on retry.
// Rate limiting and timeouts are retried; every other client error is not.
func permanentStatus(code int) bool {
	return code >= 400 && code < 500 && code != 408 && code != 429
}
