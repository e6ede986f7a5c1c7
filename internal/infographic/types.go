// Package infographic converts an infographic slide template into a
// generation contract and projects generated content back onto the
// template.
//
// The round trip is: ExtractStructure, ExtractData (the template's own text
// as a style example), GeneratePrompt, then ParseData and Validate on the
// model's reply, and finally Fill to build a new slide.
package infographic

import (
	"encoding/json"

	"slidegen/internal/slide"
)

// Kind is the layout archetype of a template.
type Kind string

const (
	KindList       Kind = "list"
	KindComparison Kind = "comparison"
	KindTimeline   Kind = "timeline"
	KindMindmap    Kind = "mindmap"
)

// Structure is the schema inferred from a template slide. It is derived
// fresh for each request and never modified.
type Structure struct {
	Kind          Kind `json:"type"`
	HasTitle      bool `json:"hasTitle"`
	HasSubtitle   bool `json:"hasSubtitle"`
	HasBody       bool `json:"hasBody"`
	HasItemTitle  bool `json:"hasItemTitle"`
	HasItemNumber bool `json:"hasItemNumber"`
	ItemCount     int  `json:"itemCount"`

	Template slide.Slide `json:"-"`
}

// Data is the generation contract: the content a model must return for a
// template. Notes is a generation rule taken from the template and is never
// written back onto a slide.
//
// Items is nil when the payload had no items array, and empty (non-nil)
// when the array was present but empty.
type Data struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Body     string `json:"body,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Items    []Item `json:"items"`
}

func (d *Data) UnmarshalJSON(b []byte) error {
	var wire struct {
		Title    flexString      `json:"title"`
		Subtitle flexString      `json:"subtitle"`
		Body     flexString      `json:"body"`
		Notes    flexString      `json:"notes"`
		Items    json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	out := Data{
		Title:    string(wire.Title),
		Subtitle: string(wire.Subtitle),
		Body:     string(wire.Body),
		Notes:    string(wire.Notes),
	}
	if isArray(wire.Items) {
		out.Items = []Item{}
		if err := json.Unmarshal(wire.Items, &out.Items); err != nil {
			return err
		}
	}
	*d = out
	return nil
}
