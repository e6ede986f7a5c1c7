package slide

import "strings"

// Older templates encode the comparison side and the timeline year slot in
// the element identifier, e.g. "item-left-1" or "number-year-2".

func legacySide(id string) Side {
	switch {
	case strings.Contains(id, "left"):
		return SideLeft
	case strings.Contains(id, "right"):
		return SideRight
	}
	return SideNone
}

func legacySlot(id string) Slot {
	if strings.Contains(id, "year") {
		return SlotYear
	}
	return SlotNone
}
