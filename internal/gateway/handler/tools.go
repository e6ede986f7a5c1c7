package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"slidegen/internal/tools"
)

func setStreamHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Cache-Control", "no-cache, no-transform")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
}

// stream writes every emitted chunk and flushes it at once. Failures after
// the headers are sent only end the stream; a client abort is not logged.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request, name string, run func(context.Context, tools.Emit) error) {
	setStreamHeaders(w)
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	emit := func(chunk string) error {
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}
	err := run(r.Context(), emit)
	if err == nil || errors.Is(err, context.Canceled) || r.Context().Err() != nil {
		return
	}
	h.logger.Warn("tool stream ended early", zap.String("tool", name), zap.Error(err))
}

func (h *Handler) Outline(w http.ResponseWriter, r *http.Request) {
	var req tools.OutlineRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.stream(w, r, tools.PhaseOutline, func(ctx context.Context, emit tools.Emit) error {
		return h.tools.Outline(ctx, req, emit)
	})
}

func (h *Handler) Slides(w http.ResponseWriter, r *http.Request) {
	var req tools.SlidesRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.stream(w, r, tools.PhaseSlides, func(ctx context.Context, emit tools.Emit) error {
		return h.tools.Slides(ctx, req, emit)
	})
}

func (h *Handler) Writing(w http.ResponseWriter, r *http.Request) {
	var req tools.WritingRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.stream(w, r, tools.PhaseWriting, func(ctx context.Context, emit tools.Emit) error {
		return h.tools.Writing(ctx, req, emit)
	})
}
