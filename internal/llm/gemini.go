package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
// It only focuses on the API call itself. Cross-cutting concerns
// (rate limiting, retries, logging, hooks) are applied via Middleware.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

// NewGeminiClient creates a client for the Gemini API. An empty apiKey lets
// genai read GEMINI_API_KEY or GOOGLE_API_KEY from the environment.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

func (g *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.modelFor(req), geminiContents(req), geminiConfig(req))
	if err != nil {
		return "", classifyGeminiError(err)
	}
	txt := resp.Text()
	if strings.TrimSpace(txt) == "" {
		return "", ErrEmptyResponse
	}
	return txt, nil
}

// Stream forwards each streamed candidate's text as one chunk.
func (g *GeminiClient) Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error) {
	var b strings.Builder
	for resp, err := range g.cli.Models.GenerateContentStream(ctx, g.modelFor(req), geminiContents(req), geminiConfig(req)) {
		if err != nil {
			return "", classifyGeminiError(err)
		}
		chunk := resp.Text()
		if chunk == "" {
			continue
		}
		b.WriteString(chunk)
		if onChunk != nil {
			if err := onChunk(chunk); err != nil {
				return "", err
			}
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

func (g *GeminiClient) modelFor(req Request) string {
	if req.Model != "" {
		return req.Model
	}
	return g.model
}

func geminiContents(req Request) []*genai.Content {
	return []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
}

func geminiConfig(req Request) *genai.GenerateContentConfig {
	if req.JSON {
		return &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}
	return nil
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && permanentStatus(apiErr.Code) {
		return NewPermanentError(fmt.Errorf("gemini: %w", err))
	}
	return fmt.Errorf("gemini: %w", err)
}
