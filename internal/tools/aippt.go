package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"slidegen/internal/llmtool"
	"slidegen/internal/util/jsonutil"
)

type SlidesRequest struct {
	Content  string `json:"content"`
	Language string `json:"language"`
	Style    string `json:"style"`
}

const (
	maxContentsItems = 12
	itemsPerSlide    = 4
)

// SlideSpec is one generated slide as the editor expects it.
type SlideSpec struct {
	Type string `json:"type" prompt:"One of cover, contents, transition, content, end."`
	Data any    `json:"data,omitempty" prompt:"Slide content shaped as in the example; omitted for end."`
}

type CoverData struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type ContentsData struct {
	Items []string `json:"items"`
}

type TransitionData struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type ContentData struct {
	Title string        `json:"title"`
	Items []ContentItem `json:"items"`
}

type ContentItem struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

var ErrNoSlides = errors.New("tools: model returned no slides")

// BuildSlides turns an outline into cover, contents, per-section transition
// and content slides, and an end slide.
func BuildSlides(o Outline, style, language string) []SlideSpec {
	slides := []SlideSpec{{
		Type: "cover",
		Data: CoverData{Title: orDefault(o.Title, defaultTitle), Text: style + " · " + language},
	}}

	toc := make([]string, 0, len(o.Sections))
	for _, s := range o.Sections {
		if s.Title != "" {
			toc = append(toc, s.Title)
		}
	}
	if len(toc) > 0 {
		slides = append(slides, SlideSpec{Type: "contents", Data: ContentsData{Items: toc[:min(len(toc), maxContentsItems)]}})
	}

	for _, s := range o.Sections {
		slides = append(slides, SlideSpec{Type: "transition", Data: TransitionData{Title: s.Title, Text: s.Title + " 概述"}})
		for start := 0; start < len(s.Bullets); start += itemsPerSlide {
			group := s.Bullets[start:min(start+itemsPerSlide, len(s.Bullets))]
			items := make([]ContentItem, len(group))
			for i, b := range group {
				items[i] = ContentItem{Title: b, Text: b + "：详细说明与要点阐述。"}
			}
			slides = append(slides, SlideSpec{Type: "content", Data: ContentData{Title: s.Title, Items: items}})
		}
	}
	return append(slides, SlideSpec{Type: "end"})
}

// Slides streams one JSON slide object per chunk.
func (t *Tools) Slides(ctx context.Context, req SlidesRequest, emit Emit) error {
	language := orDefault(req.Language, defaultLanguage)
	style := orDefault(req.Style, defaultStyle)
	if t.client == nil {
		slides := BuildSlides(ParseOutline(req.Content), style, language)
		chunks := make([]string, 0, len(slides))
		for _, s := range slides {
			b, err := jsonutil.MarshalNoEscape(s)
			if err != nil {
				return fmt.Errorf("tools: encode slide: %w", err)
			}
			chunks = append(chunks, string(b))
		}
		return t.emitAll(ctx, chunks, emit)
	}

	prompt, err := slidesPrompt(req.Content, style, language)
	if err != nil {
		return err
	}
	var split objectSplitter
	emitted := 0
	err = t.stream(ctx, PhaseSlides, prompt, func(chunk string) error {
		for _, obj := range split.Feed(chunk) {
			emitted++
			if err := emit(obj); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if emitted == 0 {
		return ErrNoSlides
	}
	return nil
}

func slidesPrompt(outline, style, language string) (string, error) {
	example := BuildSlides(Outline{Title: "Topic", Sections: []Section{{Title: "Section", Bullets: []string{"Point"}}}}, style, language)
	var out []byte
	for _, s := range example {
		b, err := jsonutil.MarshalNoEscape(s)
		if err != nil {
			return "", err
		}
		out = append(out, b...)
		out = append(out, '\n')
	}
	spec := llmtool.StructuredPromptSpec{
		Purpose:      "Turn a markdown outline into presentation slides.",
		Background:   "Slides are emitted one JSON object at a time and rendered as they arrive.",
		Input:        map[string]string{"outline": outline, "style": style},
		OutputFields: llmtool.MustFieldsFromStruct(SlideSpec{}),
		Rules: []string{
			"Emit a cover slide, a contents slide listing at most 12 section titles, then for each section a transition slide followed by content slides with at most 4 items each, and finally an end slide.",
			"Each item has a short title and one explanatory sentence.",
		},
		OutputFormat: "One JSON object per line, shaped like the example. No array, no surrounding text.",
		Language:     fmt.Sprintf("Write all text in %s.", language),
		Examples:     []llmtool.PromptExample{{OutputJSON: string(out)}},
	}
	return llmtool.RenderStructuredPrompt(llmtool.ApplyPresets(spec, llmtool.PresetStrictJSON()))
}

// objectSplitter cuts a streamed text into complete top-level JSON objects.
// Text between objects (commas, brackets, fences) is dropped.
type objectSplitter struct {
	buf      []byte
	depth    int
	inString bool
	escaped  bool
}

func (s *objectSplitter) Feed(chunk string) []string {
	var out []string
	for i := 0; i < len(chunk); i++ {
		c := chunk[i]
		if s.depth == 0 && c != '{' {
			continue
		}
		s.buf = append(s.buf, c)
		if s.inString {
			switch {
			case s.escaped:
				s.escaped = false
			case c == '\\':
				s.escaped = true
			case c == '"':
				s.inString = false
			}
			continue
		}
		switch c {
		case '"':
			s.inString = true
		case '{':
			s.depth++
		case '}':
			s.depth--
			if s.depth == 0 {
				if json.Valid(s.buf) {
					out = append(out, string(s.buf))
				}
				s.buf = s.buf[:0]
			}
		}
	}
	return out
}
