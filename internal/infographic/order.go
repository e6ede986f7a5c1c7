package infographic

import (
	"cmp"
	"slices"

	"slidegen/internal/slide"
)

// ReadingOrder compares two elements by their approximate reading position.
// The primary key is left + 2*top, so a row further down outweighs a column
// further right. Equal keys fall back to top and then left; elements that
// are still equal keep their original order when sorted with
// SortByReadingOrder.
func ReadingOrder(a, b slide.Element) int {
	if c := cmp.Compare(readingKey(a), readingKey(b)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Top, b.Top); c != 0 {
		return c
	}
	return cmp.Compare(a.Left, b.Left)
}

func readingKey(e slide.Element) float64 {
	return e.Left + 2*e.Top
}

// SortByReadingOrder stably sorts elements in place with ReadingOrder.
func SortByReadingOrder(elements []slide.Element) {
	slices.SortStableFunc(elements, ReadingOrder)
}

// placed is an element together with its index in the slide.
type placed struct {
	index int
	el    slide.Element
}

// ranked returns the elements with role, reading-ordered, keyed by their
// slide index.
func ranked(s slide.Slide, keep func(slide.Element) bool) []placed {
	var out []placed
	for i, el := range s.Elements {
		if keep(el) {
			out = append(out, placed{index: i, el: el})
		}
	}
	slices.SortStableFunc(out, func(a, b placed) int { return ReadingOrder(a.el, b.el) })
	return out
}

func withRole(role slide.TextRole) func(slide.Element) bool {
	return func(el slide.Element) bool { return el.HasRole(role) }
}

func itemOnSide(side slide.Side) func(slide.Element) bool {
	return func(el slide.Element) bool { return el.HasRole(slide.RoleItem) && el.Side == side }
}

// rankOf maps a slide index to its position in a reading-ordered list.
func rankOf(list []placed) map[int]int {
	out := make(map[int]int, len(list))
	for rank, p := range list {
		out[p.index] = rank
	}
	return out
}
