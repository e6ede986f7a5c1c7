package infographic

import (
	"fmt"

	"slidegen/internal/slide"
)

func markup(text string) string {
	return fmt.Sprintf(`<p style="font-size: 18px;"><span style="font-family: Arial;">%s</span></p>`, text)
}

func textEl(id string, role slide.TextRole, left, top float64, text string) slide.Element {
	return slide.Element{
		ID: id, Type: slide.TypeText,
		Left: left, Top: top, Width: 400, Height: 80,
		Content: markup(text), TextType: role,
	}
}

func shapeEl(id string, role slide.TextRole, left, top float64, text string) slide.Element {
	return slide.Element{
		ID: id, Type: slide.TypeShape,
		Left: left, Top: top, Width: 200, Height: 80,
		Text: &slide.ShapeText{Content: markup(text), Type: role},
	}
}

func withSide(el slide.Element, side slide.Side) slide.Element {
	el.Side = side
	return el
}

func withSlot(el slide.Element, slot slide.Slot) slide.Element {
	el.Slot = slot
	return el
}

func timelineTemplate() slide.Slide {
	return slide.Slide{ID: "tpl-timeline", Elements: []slide.Element{
		textEl("title", slide.RoleTitle, 0, 0, "History of Flight"),
		// Declared out of reading order on purpose.
		withSlot(shapeEl("y3", slide.RoleItemNumber, 600, 100, "1969"), slide.SlotYear),
		withSlot(shapeEl("y1", slide.RoleItemNumber, 0, 100, "1903"), slide.SlotYear),
		withSlot(shapeEl("y2", slide.RoleItemNumber, 300, 100, "1927"), slide.SlotYear),
		textEl("e1", slide.RoleItem, 0, 200, "First powered flight"),
		textEl("e2", slide.RoleItem, 300, 200, "Atlantic crossing"),
		textEl("e3", slide.RoleItem, 600, 200, "Moon landing"),
		{ID: "deco", Type: "image", Left: 10, Top: 10, Width: 5, Height: 5},
	}}
}

func listTemplate() slide.Slide {
	return slide.Slide{ID: "tpl-list", Elements: []slide.Element{
		textEl("title", slide.RoleTitle, 0, 0, "Healthy Habits"),
		textEl("subtitle", slide.RoleSubtitle, 0, 60, "Small steps every day"),
		textEl("body", slide.RoleContent, 0, 120, "Habits compound over time and shape long term health outcomes for everyone."),
		textEl("notes", slide.RoleNotes, 0, 500, "Each item starts with a verb."),
		textEl("i1", slide.RoleItem, 0, 300, "Sleep eight hours"),
		textEl("i2", slide.RoleItem, 300, 300, "Drink water"),
		textEl("i3", slide.RoleItem, 600, 300, "Walk daily"),
	}}
}

func titledListTemplate() slide.Slide {
	return slide.Slide{ID: "tpl-titled", Elements: []slide.Element{
		textEl("title", slide.RoleTitle, 0, 0, "Three Pillars"),
		textEl("h1", slide.RoleItemTitle, 0, 200, "Sleep"),
		textEl("h2", slide.RoleItemTitle, 300, 200, "Food"),
		textEl("t1", slide.RoleItem, 0, 260, "Rest well"),
		textEl("t2", slide.RoleItem, 300, 260, "Eat well"),
		shapeEl("n1", slide.RoleItemNumber, 0, 150, "01"),
		shapeEl("n2", slide.RoleItemNumber, 300, 150, "02"),
	}}
}

func comparisonTemplate() slide.Slide {
	return slide.Slide{ID: "tpl-cmp", Elements: []slide.Element{
		textEl("title", slide.RoleTitle, 0, 0, "Cats vs Dogs"),
		withSide(textEl("r1", slide.RoleItem, 500, 200, "Loyal"), slide.SideRight),
		withSide(textEl("l1", slide.RoleItem, 0, 200, "Independent"), slide.SideLeft),
		withSide(textEl("l2", slide.RoleItem, 0, 300, "Quiet"), slide.SideLeft),
		withSide(textEl("r2", slide.RoleItem, 500, 300, "Playful"), slide.SideRight),
	}}
}

func elementByID(t interface{ Fatalf(string, ...any) }, s slide.Slide, id string) slide.Element {
	for _, el := range s.Elements {
		if el.ID == id {
			return el
		}
	}
	t.Fatalf("element %q not found", id)
	return slide.Element{}
}
