package infographic

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"slidegen/internal/richtext"
	"slidegen/internal/slide"
	"slidegen/internal/textfit"
)

func textOf(t *testing.T, s slide.Slide, id string) string {
	t.Helper()
	return richtext.PlainText(elementByID(t, s, id).RichText())
}

func TestFill_TimelineScenario(t *testing.T) {
	tpl := timelineTemplate()
	st := ExtractStructure(tpl)
	require.Equal(t, KindTimeline, st.Kind)
	require.True(t, st.HasTitle)
	require.Equal(t, 3, st.ItemCount)

	d := Data{Title: "T", Items: []Item{
		TimelineItem("2020", "A"),
		TimelineItem("2021", "B"),
		TimelineItem("2022", "C"),
	}}
	require.NoError(t, Validate(d, st))

	out := Fill(st, d)
	require.Equal(t, "T", textOf(t, out, "title"))
	for i, pair := range [][2]string{{"y1", "e1"}, {"y2", "e2"}, {"y3", "e3"}} {
		require.Equal(t, d.Items[i].Year, textOf(t, out, pair[0]))
		require.Equal(t, d.Items[i].Event, textOf(t, out, pair[1]))
	}
}

func TestFill_NewSlideSameShape(t *testing.T) {
	for _, tpl := range []slide.Slide{timelineTemplate(), listTemplate(), titledListTemplate(), comparisonTemplate()} {
		st := ExtractStructure(tpl)
		out := Fill(st, ExtractData(st))
		require.Len(t, out.Elements, len(tpl.Elements))
		require.NotEqual(t, tpl.ID, out.ID)
		require.Len(t, out.ID, idLength)
	}
}

func TestFill_IDNeverEqualsTemplate(t *testing.T) {
	tpl := listTemplate()
	f := NewFiller(nil, WithIDFunc(func() string { return tpl.ID }))
	out := f.Fill(ExtractStructure(tpl), Data{Title: "x"})
	require.NotEqual(t, tpl.ID, out.ID)
}

func TestFill_TemplateUnchanged(t *testing.T) {
	tpl := listTemplate()
	before, err := json.Marshal(tpl)
	require.NoError(t, err)

	st := ExtractStructure(tpl)
	_ = Fill(st, Data{Title: "New", Subtitle: "Sub", Body: "Body", Items: []Item{TextItem("a"), TextItem("b")}})

	after, err := json.Marshal(tpl)
	require.NoError(t, err)
	require.JSONEq(t, string(before), string(after))
}

func TestFill_RoundTripFidelity(t *testing.T) {
	for _, tpl := range []slide.Slide{listTemplate(), timelineTemplate(), titledListTemplate(), comparisonTemplate()} {
		st := ExtractStructure(tpl)
		want := ExtractData(st)

		out := Fill(st, want)
		got := ExtractData(ExtractStructure(out))
		require.Equal(t, strings.Join(strings.Fields(want.Title), " "), strings.Join(strings.Fields(got.Title), " "))
		require.Equal(t, strings.Join(strings.Fields(want.Subtitle), " "), strings.Join(strings.Fields(got.Subtitle), " "))
		require.Equal(t, strings.Join(strings.Fields(want.Body), " "), strings.Join(strings.Fields(got.Body), " "))
		require.Equal(t, want.Items, got.Items)
	}
}

func TestFill_ExtraItemsIgnored(t *testing.T) {
	st := ExtractStructure(listTemplate())
	d := Data{Title: "t", Subtitle: "s", Body: "b", Items: []Item{
		TextItem("one"), TextItem("two"), TextItem("three"), TextItem("four"), TextItem("five"),
	}}
	require.NoError(t, Validate(d, st))

	out := Fill(st, d)
	require.Len(t, out.Elements, len(st.Template.Elements))
	require.Equal(t, "one", textOf(t, out, "i1"))
	require.Equal(t, "two", textOf(t, out, "i2"))
	require.Equal(t, "three", textOf(t, out, "i3"))
	for _, el := range out.Elements {
		text := richtext.PlainText(el.RichText())
		require.NotEqual(t, "four", text)
		require.NotEqual(t, "five", text)
	}
}

func TestFill_MissingDataLeavesElementsUnchanged(t *testing.T) {
	tpl := listTemplate()
	st := ExtractStructure(tpl)
	out := Fill(st, Data{Items: []Item{TextItem("only")}})

	require.Equal(t, "only", textOf(t, out, "i1"))
	for _, id := range []string{"title", "subtitle", "body", "notes", "i2", "i3"} {
		require.Equal(t, elementByID(t, tpl, id), elementByID(t, out, id), id)
	}
}

func TestFill_NotesNeverWritten(t *testing.T) {
	tpl := listTemplate()
	st := ExtractStructure(tpl)
	out := Fill(st, Data{Notes: "ignore me", Items: []Item{TextItem("a")}})
	require.Equal(t, "Each item starts with a verb.", textOf(t, out, "notes"))
}

func TestFill_ComparisonBySide(t *testing.T) {
	st := ExtractStructure(comparisonTemplate())
	out := Fill(st, Data{Title: "T", Items: []Item{
		ComparisonItem("L1", "R1"),
		ComparisonItem("L2", "R2"),
	}})
	require.Equal(t, "L1", textOf(t, out, "l1"))
	require.Equal(t, "L2", textOf(t, out, "l2"))
	require.Equal(t, "R1", textOf(t, out, "r1"))
	require.Equal(t, "R2", textOf(t, out, "r2"))
}

func TestFill_ComparisonSidesIndexedFromZero(t *testing.T) {
	st := ExtractStructure(comparisonTemplate())
	out := Fill(st, Data{Title: "T", Items: []Item{
		ComparisonItem("L1", "R1"),
		ComparisonItem("L2", "R2"),
		ComparisonItem("L3", "R3"),
	}})
	require.Equal(t, "R1", textOf(t, out, "r1"))
	require.Equal(t, "R2", textOf(t, out, "r2"))
	for _, el := range out.Elements {
		text := richtext.PlainText(el.RichText())
		require.NotEqual(t, "L3", text)
		require.NotEqual(t, "R3", text)
	}

	out = Fill(st, Data{Title: "T", Items: []Item{ComparisonItem("L1", "R1")}})
	require.Equal(t, "R1", textOf(t, out, "r1"))
	require.Equal(t, "Playful", textOf(t, out, "r2"))
	require.Equal(t, "Quiet", textOf(t, out, "l2"))
}

func TestFill_TitledListAndOrdinals(t *testing.T) {
	st := ExtractStructure(titledListTemplate())
	out := Fill(st, Data{Title: "T", Items: []Item{
		TitledItem("Alpha", "first"),
		TitledItem("Beta", "second"),
	}})
	require.Equal(t, "Alpha", textOf(t, out, "h1"))
	require.Equal(t, "Beta", textOf(t, out, "h2"))
	require.Equal(t, "first", textOf(t, out, "t1"))
	require.Equal(t, "second", textOf(t, out, "t2"))
	require.Equal(t, "1", textOf(t, out, "n1"))
	require.Equal(t, "2", textOf(t, out, "n2"))
}

func TestFill_MismatchedItemShapeSkipped(t *testing.T) {
	tpl := timelineTemplate()
	st := ExtractStructure(tpl)
	out := Fill(st, Data{Items: []Item{TextItem("not an event")}})
	require.Equal(t, elementByID(t, tpl, "e1"), elementByID(t, out, "e1"))
	// The year slot falls back to the ordinal.
	require.Equal(t, "1", textOf(t, out, "y1"))
}

func TestFill_ShrinksFontToFit(t *testing.T) {
	tpl := slide.Slide{ID: "x", Elements: []slide.Element{{
		ID: "title", Type: slide.TypeText, TextType: slide.RoleTitle,
		Width: 122, Height: 60,
		Content: `<p style="font-size: 30px;">old</p>`,
	}}}
	// One unit of width per character per pixel: ten characters need a size
	// of at most 10 to fit the 100px inner width on one line.
	m := textfit.MeasurerFunc(func(text string, size float64, _ string) float64 {
		return float64(len(text)) * size
	})
	out := NewFiller(m).Fill(ExtractStructure(tpl), Data{Title: "abcdefghij"})

	el := out.Elements[0]
	require.Equal(t, 10.0, richtext.FontInfo(el.Content).Size)
	require.NotNil(t, el.LineHeight)
	require.Equal(t, 1.2, *el.LineHeight)
	require.Equal(t, "abcdefghij", richtext.PlainText(el.Content))
}

func TestFill_AddsDefaultFontSize(t *testing.T) {
	tpl := slide.Slide{ID: "x", Elements: []slide.Element{{
		ID: "title", Type: slide.TypeShape, Width: 400, Height: 80,
		Text: &slide.ShapeText{Content: "<p>old</p>", Type: slide.RoleTitle},
	}}}
	out := Fill(ExtractStructure(tpl), Data{Title: "new"})
	require.Contains(t, out.Elements[0].Text.Content, "font-size: 16px")
	require.Nil(t, out.Elements[0].LineHeight)
}
