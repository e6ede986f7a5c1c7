package infographic

import "slidegen/internal/slide"

// ExtractStructure infers the schema of a template in a single pass over its
// elements. A template with item elements on both the left and right side
// is a comparison; otherwise a template with a year slot is a timeline;
// everything else is a list. Mind maps are never inferred.
func ExtractStructure(s slide.Slide) Structure {
	st := Structure{Kind: KindList, Template: s}
	var hasLeft, hasRight, hasYear bool
	for _, el := range s.Elements {
		switch el.Role() {
		case slide.RoleTitle:
			st.HasTitle = true
		case slide.RoleSubtitle:
			st.HasSubtitle = true
		case slide.RoleContent:
			st.HasBody = true
		case slide.RoleItemTitle:
			st.HasItemTitle = true
		case slide.RoleItemNumber:
			st.HasItemNumber = true
			if el.Slot == slide.SlotYear {
				hasYear = true
			}
		case slide.RoleItem:
			st.ItemCount++
			switch el.Side {
			case slide.SideLeft:
				hasLeft = true
			case slide.SideRight:
				hasRight = true
			}
		}
	}
	switch {
	case hasLeft && hasRight:
		st.Kind = KindComparison
	case hasYear:
		st.Kind = KindTimeline
	}
	return st
}
