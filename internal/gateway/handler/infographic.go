package handler

import (
	"encoding/json"
	"net/http"

	"slidegen/internal/generation"
	"slidegen/internal/infographic"
	"slidegen/internal/slide"
)

type promptRequest struct {
	templateRef
	Topic    string `json:"topic"`
	Language string `json:"language"`
}

// dataRequest carries a candidate either as a decoded object or as the raw
// model reply.
type dataRequest struct {
	templateRef
	Data  json.RawMessage `json:"data,omitempty"`
	Reply string          `json:"reply,omitempty"`
}

type generateRequest struct {
	templateRef
	Topic    string `json:"topic"`
	Language string `json:"language"`
	Model    string `json:"model,omitempty"`
}

func (h *Handler) Prompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	tmpl, err := h.resolve(r.Context(), req.templateRef)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	plan, err := h.gen.Prepare(r.Context(), generation.Request{Template: tmpl, Topic: req.Topic, Language: req.Language})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// candidate prepares the structure and decodes the submitted data.
func (h *Handler) candidate(r *http.Request, req dataRequest) (infographic.Structure, infographic.Data, error) {
	tmpl, err := h.resolve(r.Context(), req.templateRef)
	if err != nil {
		return infographic.Structure{}, infographic.Data{}, err
	}
	plan, err := h.gen.Prepare(r.Context(), generation.Request{Template: tmpl})
	if err != nil {
		return infographic.Structure{}, infographic.Data{}, err
	}
	var d infographic.Data
	switch {
	case len(req.Data) > 0:
		if err := json.Unmarshal(req.Data, &d); err != nil {
			return infographic.Structure{}, infographic.Data{}, badRequest("invalid data: %v", err)
		}
	case req.Reply != "":
		if d, err = infographic.ParseData(req.Reply); err != nil {
			return infographic.Structure{}, infographic.Data{}, badRequest("%v", err)
		}
	default:
		return infographic.Structure{}, infographic.Data{}, badRequest("data or reply is required")
	}
	return plan.Structure, d, nil
}

// Validate always answers 200 with a validity verdict for well-formed input.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req dataRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, d, err := h.candidate(r, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, infographic.Check(d, st))
}

func (h *Handler) Fill(w http.ResponseWriter, r *http.Request) {
	var req dataRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, d, err := h.candidate(r, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := infographic.Validate(d, st); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]slide.Slide{"slide": h.gen.Fill(st, d)})
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	tmpl, err := h.resolve(r.Context(), req.templateRef)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.gen.Generate(r.Context(), generation.Request{
		Template: tmpl,
		Topic:    req.Topic,
		Language: req.Language,
		Model:    req.Model,
	}, nil)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
