package infographic

import (
	"slidegen/internal/richtext"
	"slidegen/internal/slide"
)

// ExtractData reads the template's own text back out as example content.
// The result is used as a style reference when prompting and is never shown
// to the user directly.
func ExtractData(st Structure) Data {
	tpl := st.Template
	d := Data{
		Title:    firstText(tpl, slide.RoleTitle),
		Subtitle: firstText(tpl, slide.RoleSubtitle),
		Body:     firstText(tpl, slide.RoleContent),
		Notes:    firstText(tpl, slide.RoleNotes),
		Items:    []Item{},
	}

	items := ranked(tpl, withRole(slide.RoleItem))
	switch st.Kind {
	case KindComparison:
		lefts := ranked(tpl, itemOnSide(slide.SideLeft))
		rights := ranked(tpl, itemOnSide(slide.SideRight))
		n := min(len(lefts), len(rights), st.ItemCount)
		for i := 0; i < n; i++ {
			d.Items = append(d.Items, ComparisonItem(plain(lefts[i].el), plain(rights[i].el)))
		}
	case KindTimeline:
		numbers := ranked(tpl, withRole(slide.RoleItemNumber))
		n := min(len(numbers), len(items), st.ItemCount)
		for i := 0; i < n; i++ {
			d.Items = append(d.Items, TimelineItem(plain(numbers[i].el), plain(items[i].el)))
		}
	default:
		titles := ranked(tpl, withRole(slide.RoleItemTitle))
		for i := 0; i < st.ItemCount && i < len(items); i++ {
			if st.HasItemTitle && i < len(titles) {
				d.Items = append(d.Items, TitledItem(plain(titles[i].el), plain(items[i].el)))
				continue
			}
			d.Items = append(d.Items, TextItem(plain(items[i].el)))
		}
	}
	return d
}

func firstText(s slide.Slide, role slide.TextRole) string {
	for _, el := range s.Elements {
		if el.HasRole(role) {
			return plain(el)
		}
	}
	return ""
}

func plain(el slide.Element) string {
	return richtext.PlainText(el.RichText())
}
