// Package slide models the editor's slide document: an ordered list of
// positioned elements, some of which carry rich text tagged with a semantic
// role. Fields the editor sends that this package does not interpret are kept
// verbatim so a slide survives a decode/encode round trip unchanged.
package slide

import (
	"encoding/json"
	"fmt"
)

type ElementType string

const (
	TypeText  ElementType = "text"
	TypeShape ElementType = "shape"
)

// TextRole is the semantic role of a text-bearing element inside an
// infographic template.
type TextRole string

const (
	RoleNone       TextRole = ""
	RoleTitle      TextRole = "title"
	RoleSubtitle   TextRole = "subtitle"
	RoleContent    TextRole = "content"
	RoleNotes      TextRole = "notes"
	RoleItem       TextRole = "item"
	RoleItemTitle  TextRole = "itemTitle"
	RoleItemNumber TextRole = "itemNumber"
)

// Side marks which half of a comparison layout an item element belongs to.
type Side string

const (
	SideNone  Side = ""
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Slot marks the meaning of an itemNumber element.
type Slot string

const (
	SlotNone Slot = ""
	SlotYear Slot = "year"
)

// Slide is one page of the presentation.
type Slide struct {
	ID       string
	Elements []Element

	raw map[string]json.RawMessage
}

// ShapeText is the text payload nested inside a shape element.
type ShapeText struct {
	Content string
	Type    TextRole

	raw map[string]json.RawMessage
}

// Element is a positioned visual object. Only text and shape elements carry
// text; every other type is carried opaquely.
type Element struct {
	ID     string
	Type   ElementType
	Left   float64
	Top    float64
	Width  float64
	Height float64

	// Text elements.
	Content    string
	TextType   TextRole
	LineHeight *float64

	// Shape elements.
	Text *ShapeText

	Side Side
	Slot Slot

	raw map[string]json.RawMessage
}

// Role returns the semantic role of the element's text, or RoleNone.
func (e Element) Role() TextRole {
	switch e.Type {
	case TypeText:
		return e.TextType
	case TypeShape:
		if e.Text != nil {
			return e.Text.Type
		}
	}
	return RoleNone
}

// HasRole reports whether the element carries text tagged with role.
func (e Element) HasRole(role TextRole) bool {
	return role != RoleNone && e.Role() == role
}

// RichText returns the element's markup, or "" for elements without text.
func (e Element) RichText() string {
	switch e.Type {
	case TypeText:
		return e.Content
	case TypeShape:
		if e.Text != nil {
			return e.Text.Content
		}
	}
	return ""
}

// WithRichText returns a copy of e whose markup is replaced.
func (e Element) WithRichText(markup string) Element {
	out := e.Clone()
	switch out.Type {
	case TypeText:
		out.Content = markup
	case TypeShape:
		if out.Text != nil {
			out.Text.Content = markup
		}
	}
	return out
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	out := e
	if e.LineHeight != nil {
		lh := *e.LineHeight
		out.LineHeight = &lh
	}
	if e.Text != nil {
		t := *e.Text
		t.raw = cloneRaw(e.Text.raw)
		out.Text = &t
	}
	out.raw = cloneRaw(e.raw)
	return out
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	out := Slide{ID: s.ID, raw: cloneRaw(s.raw)}
	if s.Elements != nil {
		out.Elements = make([]Element, len(s.Elements))
		for i, el := range s.Elements {
			out.Elements[i] = el.Clone()
		}
	}
	return out
}

// UpgradeLegacy fills in Side and Slot for templates authored before those
// attributes existed, where they were encoded as substrings of the element
// identifier. Explicit values are never overwritten.
func UpgradeLegacy(s Slide) Slide {
	out := s.Clone()
	for i := range out.Elements {
		el := &out.Elements[i]
		switch el.Role() {
		case RoleItem:
			if el.Side == SideNone {
				el.Side = legacySide(el.ID)
			}
		case RoleItemNumber:
			if el.Slot == SlotNone {
				el.Slot = legacySlot(el.ID)
			}
		}
	}
	return out
}

func (s Slide) MarshalJSON() ([]byte, error) {
	out := cloneRaw(s.raw)
	if out == nil {
		out = make(map[string]json.RawMessage, 2)
	}
	if err := setField(out, "id", s.ID); err != nil {
		return nil, err
	}
	elements := s.Elements
	if elements == nil {
		elements = []Element{}
	}
	if err := setField(out, "elements", elements); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func (s *Slide) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("slide: %w", err)
	}
	var out Slide
	if err := getField(raw, "id", &out.ID); err != nil {
		return err
	}
	if err := getField(raw, "elements", &out.Elements); err != nil {
		return err
	}
	out.raw = raw
	*s = out
	return nil
}

func (t ShapeText) MarshalJSON() ([]byte, error) {
	out := cloneRaw(t.raw)
	if out == nil {
		out = make(map[string]json.RawMessage, 2)
	}
	if err := setField(out, "content", t.Content); err != nil {
		return nil, err
	}
	if t.Type == RoleNone {
		delete(out, "type")
	} else if err := setField(out, "type", t.Type); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func (t *ShapeText) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("shape text: %w", err)
	}
	var out ShapeText
	if err := getField(raw, "content", &out.Content); err != nil {
		return err
	}
	if err := getField(raw, "type", &out.Type); err != nil {
		return err
	}
	out.raw = raw
	*t = out
	return nil
}

func (e Element) MarshalJSON() ([]byte, error) {
	out := cloneRaw(e.raw)
	if out == nil {
		out = make(map[string]json.RawMessage, 8)
	}
	if err := setField(out, "id", e.ID); err != nil {
		return nil, err
	}
	if err := setField(out, "type", e.Type); err != nil {
		return nil, err
	}
	geometry := []struct {
		key string
		val float64
	}{{"left", e.Left}, {"top", e.Top}, {"width", e.Width}, {"height", e.Height}}
	for _, g := range geometry {
		if _, had := out[g.key]; !had && g.val == 0 {
			continue
		}
		if err := setField(out, g.key, g.val); err != nil {
			return nil, err
		}
	}

	if e.Type == TypeText {
		if err := setField(out, "content", e.Content); err != nil {
			return nil, err
		}
		if e.TextType == RoleNone {
			delete(out, "textType")
		} else if err := setField(out, "textType", e.TextType); err != nil {
			return nil, err
		}
		if e.LineHeight == nil {
			delete(out, "lineHeight")
		} else if err := setField(out, "lineHeight", *e.LineHeight); err != nil {
			return nil, err
		}
	}
	if e.Text == nil {
		if e.Type == TypeShape {
			delete(out, "text")
		}
	} else if err := setField(out, "text", e.Text); err != nil {
		return nil, err
	}

	if e.Side == SideNone {
		delete(out, "side")
	} else if err := setField(out, "side", e.Side); err != nil {
		return nil, err
	}
	if e.Slot == SlotNone {
		delete(out, "slot")
	} else if err := setField(out, "slot", e.Slot); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func (e *Element) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("element: %w", err)
	}
	var out Element
	fields := []struct {
		key string
		dst any
	}{
		{"id", &out.ID},
		{"type", &out.Type},
		{"left", &out.Left},
		{"top", &out.Top},
		{"width", &out.Width},
		{"height", &out.Height},
		{"side", &out.Side},
		{"slot", &out.Slot},
	}
	for _, f := range fields {
		if err := getField(raw, f.key, f.dst); err != nil {
			return err
		}
	}
	switch out.Type {
	case TypeText:
		if err := getField(raw, "content", &out.Content); err != nil {
			return err
		}
		if err := getField(raw, "textType", &out.TextType); err != nil {
			return err
		}
		if err := getField(raw, "lineHeight", &out.LineHeight); err != nil {
			return err
		}
	case TypeShape:
		if err := getField(raw, "text", &out.Text); err != nil {
			return err
		}
	}
	out.raw = raw
	*e = out
	return nil
}

func getField(raw map[string]json.RawMessage, key string, dst any) error {
	v, ok := raw[key]
	if !ok || string(v) == "null" {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

func setField(raw map[string]json.RawMessage, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	raw[key] = b
	return nil
}

func cloneRaw(in map[string]json.RawMessage) map[string]json.RawMessage {
	if in == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
