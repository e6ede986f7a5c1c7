package handler

import (
	"net/http"
	"path"

	"slidegen/internal/slide"
)

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	ids, err := h.templates.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"templates": ids})
}

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	s, err := h.templates.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) PutTemplate(w http.ResponseWriter, r *http.Request) {
	var s slide.Slide
	if err := decode(w, r, &s); err != nil {
		h.writeError(w, r, err)
		return
	}
	if len(s.Elements) == 0 {
		h.writeError(w, r, badRequest("template has no elements"))
		return
	}
	id := r.PathValue("id")
	if err := h.templates.Save(r.Context(), id, s); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) ListGeneration(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	files, err := h.gen.Files(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "files": files})
}

// GetGeneration serves one artifact, redirecting to the blob store when it
// can hand out a direct URL.
func (h *Handler) GetGeneration(w http.ResponseWriter, r *http.Request) {
	id, file := r.PathValue("id"), r.PathValue("file")
	if file != path.Base(file) || file == "." || file == ".." {
		h.writeError(w, r, badRequest("invalid file name"))
		return
	}
	if u, err := h.gen.URL(r.Context(), id, file); err == nil && u != "" {
		http.Redirect(w, r, u, http.StatusFound)
		return
	}
	raw, err := h.gen.Load(r.Context(), id, file)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType(file))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func contentType(file string) string {
	switch path.Ext(file) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}
