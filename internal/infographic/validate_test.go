package infographic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"slidegen/internal/slide"
)

func TestValidate_EmptyItemSlotsAlwaysRejected(t *testing.T) {
	st := ExtractStructure(slide.Slide{ID: "x", Elements: []slide.Element{textEl("t", slide.RoleTitle, 0, 0, "T")}})
	candidates := []Data{
		{Title: "T", Items: []Item{TextItem("a")}},
		{Title: "T", Items: []Item{TitledItem("a", "b"), TextItem("c")}},
		{Title: "T", Items: []Item{}},
		{Title: "T"},
		{},
	}
	for _, d := range candidates {
		require.Error(t, Validate(d, st))
		require.False(t, Check(d, st).Valid)
	}
}

func TestValidate_RequiredSlots(t *testing.T) {
	st := ExtractStructure(listTemplate())
	items := []Item{TextItem("a")}

	err := Validate(Data{Subtitle: "s", Body: "b", Items: items}, st)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "title", ve.Field)

	err = Validate(Data{Title: "t", Body: "b", Items: items}, st)
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "subtitle", ve.Field)

	err = Validate(Data{Title: "t", Subtitle: "s", Items: items}, st)
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "body", ve.Field)

	require.NoError(t, Validate(Data{Title: "t", Subtitle: "s", Body: "b", Items: items}, st))
}

func TestValidate_ItemsMissingOrEmpty(t *testing.T) {
	st := ExtractStructure(timelineTemplate())

	err := Validate(Data{Title: "T"}, st)
	require.ErrorContains(t, err, "items")

	err = Validate(Data{Title: "T", Items: []Item{}}, st)
	require.ErrorContains(t, err, "empty")
}

func TestValidate_ComparisonItemMissingRight(t *testing.T) {
	st := ExtractStructure(comparisonTemplate())
	d, err := ParseData(`{"title":"T","items":[{"left":"a","right":"b"},{"left":"c"}]}`)
	require.NoError(t, err)

	res := Check(d, st)
	require.False(t, res.Valid)
	require.Contains(t, res.Error, "item 2")
	require.Contains(t, res.Error, `"right"`)

	var ve *ValidationError
	require.ErrorAs(t, Validate(d, st), &ve)
	require.Equal(t, 1, ve.Index)
	require.True(t, IsValidationError(Validate(d, st)))
}

func TestValidate_TimelineAndTitledShapes(t *testing.T) {
	timeline := ExtractStructure(timelineTemplate())
	require.Error(t, Validate(Data{Title: "T", Items: []Item{TextItem("1990")}}, timeline))
	require.NoError(t, Validate(Data{Title: "T", Items: []Item{TimelineItem("1990", "x")}}, timeline))

	titled := ExtractStructure(titledListTemplate())
	err := Validate(Data{Title: "T", Items: []Item{TitledItem("a", "b"), TextItem("c")}}, titled)
	require.ErrorContains(t, err, "item 2")
}

func TestValidate_TimelineItemWithExtraKeys(t *testing.T) {
	st := ExtractStructure(timelineTemplate())
	d, err := ParseData(`{"title":"T","items":[{"year":"2020","event":"A","title":"x","text":"y"},{"year":2021,"event":"B"},{"year":"2022","event":"C"}]}`)
	require.NoError(t, err)
	require.NoError(t, Validate(d, st))

	conformed := Conform(d, st)
	require.Equal(t, TimelineItem("2020", "A"), conformed.Items[0])
	require.Equal(t, ShapeTitled, d.Items[0].Shape)

	out := Fill(st, d)
	require.Equal(t, "2020", textOf(t, out, "y1"))
	require.Equal(t, "A", textOf(t, out, "e1"))
}

func TestValidate_PlainListAcceptsAnyItem(t *testing.T) {
	st := ExtractStructure(listTemplate())
	d, err := ParseData(`{"title":"t","subtitle":"s","body":"b","items":["a", 3, {"x":1}]}`)
	require.NoError(t, err)
	require.NoError(t, Validate(d, st))
}

func TestValidate_OnlyChecksUpToItemCount(t *testing.T) {
	st := ExtractStructure(timelineTemplate())
	d := Data{Title: "T", Items: []Item{
		TimelineItem("1", "a"), TimelineItem("2", "b"), TimelineItem("3", "c"),
		TextItem("ignored"), TextItem("ignored too"),
	}}
	require.NoError(t, Validate(d, st))
}

func TestValidate_DoesNotMutate(t *testing.T) {
	st := ExtractStructure(timelineTemplate())
	d := Data{Title: "T", Items: []Item{TimelineItem("1", "a")}}
	before := d.Items[0]
	_ = Validate(d, st)
	require.Equal(t, before, d.Items[0])
}
