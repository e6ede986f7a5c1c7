// Package handler serves the gateway's HTTP API: the streaming AI tools,
// the infographic round trip and template storage.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"slidegen/internal/generation"
	"slidegen/internal/infographic"
	"slidegen/internal/slide"
	"slidegen/internal/store"
	"slidegen/internal/tools"
)

// MaxBodyBytes bounds every request body.
const MaxBodyBytes = 2 << 20

type Handler struct {
	gen       *generation.Service
	templates *generation.Templates
	tools     *tools.Tools
	logger    *zap.Logger
}

func New(gen *generation.Service, templates *generation.Templates, t *tools.Tools, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{gen: gen, templates: templates, tools: t, logger: logger.Named("gateway")}
}

// Register adds every route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Health)

	mux.HandleFunc("POST /tools/aippt_outline", h.Outline)
	mux.HandleFunc("POST /tools/aippt", h.Slides)
	mux.HandleFunc("POST /tools/ai_writing", h.Writing)

	mux.HandleFunc("POST /infographic/prompt", h.Prompt)
	mux.HandleFunc("POST /infographic/validate", h.Validate)
	mux.HandleFunc("POST /infographic/fill", h.Fill)
	mux.HandleFunc("POST /infographic/generate", h.Generate)
	mux.HandleFunc("GET /infographic/ws", h.GenerateWS)

	mux.HandleFunc("GET /templates", h.ListTemplates)
	mux.HandleFunc("GET /templates/{id}", h.GetTemplate)
	mux.HandleFunc("PUT /templates/{id}", h.PutTemplate)
	mux.HandleFunc("GET /generations/{id}", h.ListGeneration)
	mux.HandleFunc("GET /generations/{id}/{file}", h.GetGeneration)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	msg := "slidegen gateway is running."
	if h.gen.Demo() {
		msg = "slidegen gateway is running in demo mode."
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "message": msg})
}

// errBadRequest marks client input errors.
type errBadRequest struct{ msg string }

func (e *errBadRequest) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &errBadRequest{msg: fmt.Sprintf(format, args...)}
}

// decode reads a JSON body of at most MaxBodyBytes into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return badRequest("invalid json body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Warn("request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	var bad *errBadRequest
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &bad),
		errors.Is(err, generation.ErrEmptyTopic),
		errors.Is(err, generation.ErrNoTemplate),
		errors.Is(err, generation.ErrBadTemplateID):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case infographic.IsValidationError(err), errors.Is(err, generation.ErrNoItems):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, infographic.ErrMalformedReply), errors.Is(err, generation.ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// templateRef names the template of a request: inline, or saved by id.
type templateRef struct {
	Template   *slide.Slide `json:"template,omitempty"`
	TemplateID string       `json:"templateId,omitempty"`
}

func (h *Handler) resolve(ctx context.Context, ref templateRef) (slide.Slide, error) {
	if ref.Template != nil {
		return *ref.Template, nil
	}
	if id := strings.TrimSpace(ref.TemplateID); id != "" {
		return h.templates.Load(ctx, id)
	}
	return slide.Slide{}, badRequest("template or templateId is required")
}
