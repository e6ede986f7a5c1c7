package infographic

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Shape identifies which variant an Item holds.
type Shape string

const (
	ShapeText       Shape = "text"
	ShapeTitled     Shape = "titled"
	ShapeTimeline   Shape = "timeline"
	ShapeComparison Shape = "comparison"
	// ShapeMalformed is any payload that is not one of the shapes above,
	// such as an object missing half of a pair, a number or null.
	ShapeMalformed Shape = "malformed"
)

// Item is one entry of Data.Items. Only the fields of its Shape are set.
type Item struct {
	Shape Shape

	Text  string // ShapeText, and the description of ShapeTitled
	Title string // ShapeTitled
	Year  string // ShapeTimeline
	Event string // ShapeTimeline
	Left  string // ShapeComparison
	Right string // ShapeComparison

	raw json.RawMessage
	// alt holds the other complete pairs of an object that carried more
	// than one, in classification order.
	alt []Item
}

func TextItem(text string) Item { return Item{Shape: ShapeText, Text: text} }

func TitledItem(title, text string) Item {
	return Item{Shape: ShapeTitled, Title: title, Text: text}
}

func TimelineItem(year, event string) Item {
	return Item{Shape: ShapeTimeline, Year: year, Event: event}
}

func ComparisonItem(left, right string) Item {
	return Item{Shape: ShapeComparison, Left: left, Right: right}
}

func (it Item) MarshalJSON() ([]byte, error) {
	switch it.Shape {
	case ShapeText:
		return json.Marshal(it.Text)
	case ShapeTitled:
		return json.Marshal(struct {
			Title string `json:"title"`
			Text  string `json:"text"`
		}{it.Title, it.Text})
	case ShapeTimeline:
		return json.Marshal(struct {
			Year  string `json:"year"`
			Event string `json:"event"`
		}{it.Year, it.Event})
	case ShapeComparison:
		return json.Marshal(struct {
			Left  string `json:"left"`
			Right string `json:"right"`
		}{it.Left, it.Right})
	}
	if len(it.raw) > 0 {
		return it.raw, nil
	}
	return []byte("null"), nil
}

// As returns it read as shape. An object carrying several complete pairs,
// such as {"year", "event", "title", "text"}, can be read as any of them.
func (it Item) As(shape Shape) (Item, bool) {
	if it.Shape == shape {
		return it, true
	}
	for _, a := range it.alt {
		if a.Shape == shape {
			return a, true
		}
	}
	return it, false
}

// UnmarshalJSON classifies a payload by key presence. A string is a text
// item; an object with both keys of a pair is that pair (title/text first,
// then year/event, then left/right) and keeps the other complete pairs for
// As; anything else is malformed.
func (it *Item) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	malformed := Item{Shape: ShapeMalformed, raw: append(json.RawMessage(nil), b...)}
	if len(b) == 0 {
		*it = malformed
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("item: %w", err)
		}
		*it = TextItem(s)
		return nil
	case '{':
	default:
		*it = malformed
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("item: %w", err)
	}
	field := func(key string) (string, bool) {
		v, ok := obj[key]
		if !ok {
			return "", false
		}
		var s flexString
		if err := json.Unmarshal(v, &s); err != nil {
			return "", false
		}
		return string(s), true
	}
	pair := func(a, b string) (string, string, bool) {
		x, okA := field(a)
		y, okB := field(b)
		return x, y, okA && okB
	}

	var found []Item
	if title, text, ok := pair("title", "text"); ok {
		found = append(found, TitledItem(title, text))
	}
	if year, event, ok := pair("year", "event"); ok {
		found = append(found, TimelineItem(year, event))
	}
	if left, right, ok := pair("left", "right"); ok {
		found = append(found, ComparisonItem(left, right))
	}
	if len(found) == 0 {
		*it = malformed
		return nil
	}
	*it = found[0]
	if len(found) > 1 {
		it.alt = found[1:]
	}
	return nil
}

// flexString accepts a JSON string, number or boolean and keeps its text.
// null decodes to "".
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	case '{', '[':
		return fmt.Errorf("expected a string, got %s", b[:1])
	}
	*s = flexString(b)
	return nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
