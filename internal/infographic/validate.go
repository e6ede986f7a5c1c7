package infographic

import (
	"errors"
	"fmt"
)

// ValidationError describes the first way a candidate failed to match a
// structure. Index is the zero-based item index, or -1 for non-item fields.
type ValidationError struct {
	Field  string
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("infographic: %s %d: %s", e.Field, e.Index+1, e.Reason)
	}
	return fmt.Sprintf("infographic: %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Result is the wire form of a validation outcome.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Check runs Validate and reports the outcome as a Result.
func Check(d Data, st Structure) Result {
	if err := Validate(d, st); err != nil {
		return Result{Valid: false, Error: err.Error()}
	}
	return Result{Valid: true}
}

// Validate checks a candidate against a structure and returns the first
// failure. It never modifies d and does not sanitise markup.
//
// Only the first min(len(d.Items), st.ItemCount) items are shape-checked;
// extra items are ignored and missing ones are left for Fill to skip.
func Validate(d Data, st Structure) error {
	required := []struct {
		present bool
		field   string
		value   string
	}{
		{st.HasTitle, "title", d.Title},
		{st.HasSubtitle, "subtitle", d.Subtitle},
		{st.HasBody, "body", d.Body},
	}
	for _, r := range required {
		if r.present && r.value == "" {
			return &ValidationError{Field: r.field, Index: -1, Reason: "missing"}
		}
	}
	if d.Items == nil {
		return &ValidationError{Field: "items", Index: -1, Reason: "missing or not an array"}
	}
	if len(d.Items) == 0 {
		return &ValidationError{Field: "items", Index: -1, Reason: "empty"}
	}
	if st.ItemCount == 0 {
		return &ValidationError{Field: "items", Index: -1, Reason: "template has no item slots"}
	}

	want, keys := expectedShape(st)
	if want == "" {
		return nil
	}
	n := min(len(d.Items), st.ItemCount)
	for i := 0; i < n; i++ {
		if _, ok := d.Items[i].As(want); !ok {
			return &ValidationError{Field: "item", Index: i, Reason: "must be an object with " + keys}
		}
	}
	return nil
}

// Conform returns d with every item that can be read as the shape st
// requires rewritten to that shape. Items are not modified in place.
func Conform(d Data, st Structure) Data {
	want, _ := expectedShape(st)
	if want == "" {
		return d
	}
	items := make([]Item, len(d.Items))
	for i, it := range d.Items {
		items[i], _ = it.As(want)
	}
	if d.Items != nil {
		d.Items = items
	}
	return d
}

// expectedShape returns the item shape a structure requires, or "" when any
// item is accepted.
func expectedShape(st Structure) (Shape, string) {
	switch st.Kind {
	case KindComparison:
		return ShapeComparison, `"left" and "right"`
	case KindTimeline:
		return ShapeTimeline, `"year" and "event"`
	case KindList:
		if st.HasItemTitle {
			return ShapeTitled, `"title" and "text"`
		}
	}
	return "", ""
}
