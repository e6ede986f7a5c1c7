package generation

import (
	"fmt"
	"strings"

	"slidegen/internal/infographic"
)

// Placeholder fabricates data for demo mode: the template's own example
// text, with the title replaced by topic and blanks filled so the result
// validates against st. It yields one item per example item, or ItemCount
// items when the template had none to read.
func Placeholder(st infographic.Structure, example infographic.Data, topic string) infographic.Data {
	topic = strings.TrimSpace(topic)
	d := infographic.Data{
		Title:    orDefault(example.Title, topic),
		Subtitle: orDefault(example.Subtitle, topic),
		Body:     orDefault(example.Body, topic),
	}
	if st.HasTitle && topic != "" {
		d.Title = topic
	}
	if !st.HasTitle {
		d.Title = ""
	}
	if !st.HasSubtitle {
		d.Subtitle = ""
	}
	if !st.HasBody {
		d.Body = ""
	}

	n := len(example.Items)
	if n == 0 {
		n = st.ItemCount
	}
	d.Items = make([]infographic.Item, 0, n)
	for i := range n {
		var ex infographic.Item
		if i < len(example.Items) {
			ex = example.Items[i]
		}
		d.Items = append(d.Items, placeholderItem(st, ex, i+1, topic))
	}
	return d
}

func placeholderItem(st infographic.Structure, ex infographic.Item, n int, topic string) infographic.Item {
	label := fmt.Sprintf("%s %d", orDefault(topic, "Item"), n)
	switch st.Kind {
	case infographic.KindComparison:
		return infographic.ComparisonItem(orDefault(ex.Left, label+"A"), orDefault(ex.Right, label+"B"))
	case infographic.KindTimeline:
		return infographic.TimelineItem(orDefault(ex.Year, fmt.Sprint(n)), orDefault(ex.Event, label))
	}
	if st.HasItemTitle {
		return infographic.TitledItem(orDefault(ex.Title, label), orDefault(ex.Text, label))
	}
	return infographic.TextItem(orDefault(ex.Text, label))
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
