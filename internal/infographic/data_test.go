package infographic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slidegen/internal/slide"
)

func TestExtractData_Timeline(t *testing.T) {
	d := ExtractData(ExtractStructure(timelineTemplate()))
	require.Equal(t, "History of Flight", d.Title)
	require.Equal(t, []Item{
		TimelineItem("1903", "First powered flight"),
		TimelineItem("1927", "Atlantic crossing"),
		TimelineItem("1969", "Moon landing"),
	}, d.Items)
}

func TestExtractData_List(t *testing.T) {
	d := ExtractData(ExtractStructure(listTemplate()))
	require.Equal(t, "Healthy Habits", d.Title)
	require.Equal(t, "Small steps every day", d.Subtitle)
	require.Equal(t, "Each item starts with a verb.", d.Notes)
	require.Equal(t, []Item{
		TextItem("Sleep eight hours"),
		TextItem("Drink water"),
		TextItem("Walk daily"),
	}, d.Items)
}

func TestExtractData_TitledList(t *testing.T) {
	d := ExtractData(ExtractStructure(titledListTemplate()))
	require.Equal(t, []Item{
		TitledItem("Sleep", "Rest well"),
		TitledItem("Food", "Eat well"),
	}, d.Items)
}

func TestExtractData_ComparisonPairsBySide(t *testing.T) {
	d := ExtractData(ExtractStructure(comparisonTemplate()))
	require.Equal(t, []Item{
		ComparisonItem("Independent", "Loyal"),
		ComparisonItem("Quiet", "Playful"),
	}, d.Items)
}

func TestExtractData_StripsMarkup(t *testing.T) {
	tpl := slide.Slide{ID: "x", Elements: []slide.Element{{
		ID: "t", Type: slide.TypeText, TextType: slide.RoleTitle,
		Content: "<p>  <strong>Bold</strong> &amp; <em>plain</em>  </p>",
	}}}
	require.Equal(t, "Bold & plain", ExtractData(ExtractStructure(tpl)).Title)
}

func TestExtractData_NoItemsIsEmptySlice(t *testing.T) {
	tpl := slide.Slide{ID: "x", Elements: []slide.Element{textEl("t", slide.RoleTitle, 0, 0, "T")}}
	d := ExtractData(ExtractStructure(tpl))
	require.NotNil(t, d.Items)
	require.Empty(t, d.Items)
}
