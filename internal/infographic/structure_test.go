package infographic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slidegen/internal/slide"
)

func TestExtractStructure_Kinds(t *testing.T) {
	cases := []struct {
		name  string
		tpl   slide.Slide
		kind  Kind
		count int
	}{
		{"timeline", timelineTemplate(), KindTimeline, 3},
		{"list", listTemplate(), KindList, 3},
		{"titled list", titledListTemplate(), KindList, 2},
		{"comparison", comparisonTemplate(), KindComparison, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := ExtractStructure(tc.tpl)
			require.Equal(t, tc.kind, st.Kind)
			require.Equal(t, tc.count, st.ItemCount)
		})
	}
}

func TestExtractStructure_Flags(t *testing.T) {
	st := ExtractStructure(listTemplate())
	require.True(t, st.HasTitle)
	require.True(t, st.HasSubtitle)
	require.True(t, st.HasBody)
	require.False(t, st.HasItemTitle)
	require.False(t, st.HasItemNumber)

	st = ExtractStructure(titledListTemplate())
	require.True(t, st.HasItemTitle)
	require.True(t, st.HasItemNumber)
	require.False(t, st.HasSubtitle)
}

func TestExtractStructure_OneSidedComparisonIsList(t *testing.T) {
	tpl := slide.Slide{ID: "x", Elements: []slide.Element{
		withSide(textEl("a", slide.RoleItem, 0, 0, "a"), slide.SideLeft),
		withSide(textEl("b", slide.RoleItem, 0, 100, "b"), slide.SideLeft),
	}}
	require.Equal(t, KindList, ExtractStructure(tpl).Kind)
}

func TestExtractStructure_ComparisonWinsOverTimeline(t *testing.T) {
	tpl := comparisonTemplate()
	tpl.Elements = append(tpl.Elements, withSlot(textEl("y", slide.RoleItemNumber, 0, 400, "2020"), slide.SlotYear))
	require.Equal(t, KindComparison, ExtractStructure(tpl).Kind)
}

func TestExtractStructure_SidesOnNonItemsIgnored(t *testing.T) {
	tpl := slide.Slide{ID: "x", Elements: []slide.Element{
		withSide(textEl("a", slide.RoleTitle, 0, 0, "a"), slide.SideLeft),
		withSide(textEl("b", slide.RoleItem, 0, 100, "b"), slide.SideRight),
	}}
	require.Equal(t, KindList, ExtractStructure(tpl).Kind)
}

func TestExtractStructure_Idempotent(t *testing.T) {
	for _, tpl := range []slide.Slide{timelineTemplate(), listTemplate(), comparisonTemplate()} {
		require.Equal(t, ExtractStructure(tpl), ExtractStructure(tpl))
	}
}

func TestExtractStructure_LegacyIdentifiers(t *testing.T) {
	tpl := slide.Slide{ID: "legacy", Elements: []slide.Element{
		textEl("item-left-1", slide.RoleItem, 0, 0, "a"),
		textEl("item-right-1", slide.RoleItem, 300, 0, "b"),
	}}
	require.Equal(t, KindList, ExtractStructure(tpl).Kind, "identifiers alone carry no meaning")
	require.Equal(t, KindComparison, ExtractStructure(slide.UpgradeLegacy(tpl)).Kind)
}

func TestExtractStructure_NoItems(t *testing.T) {
	tpl := slide.Slide{ID: "x", Elements: []slide.Element{textEl("t", slide.RoleTitle, 0, 0, "only")}}
	st := ExtractStructure(tpl)
	require.Zero(t, st.ItemCount)
	require.Equal(t, KindList, st.Kind)
}

func TestReadingOrder(t *testing.T) {
	els := []slide.Element{
		{ID: "below", Left: 0, Top: 100},
		{ID: "tie-lower", Left: 0, Top: 10},
		{ID: "tie-upper", Left: 20, Top: 0},
		{ID: "same-1", Left: 5, Top: 50},
		{ID: "same-2", Left: 5, Top: 50},
	}
	SortByReadingOrder(els)
	var ids []string
	for _, el := range els {
		ids = append(ids, el.ID)
	}
	require.Equal(t, []string{"tie-upper", "tie-lower", "same-1", "same-2", "below"}, ids)
}

func TestStructureCache(t *testing.T) {
	c := NewStructureCache(4, 0)
	tpl := timelineTemplate()

	first, err := c.Extract(tpl)
	require.NoError(t, err)
	second, err := c.Extract(tpl)
	require.NoError(t, err)
	require.Equal(t, first, second)

	hits, misses := c.Stats()
	require.Equal(t, uint64(1), hits)
	require.Equal(t, uint64(1), misses)

	other := listTemplate()
	st, err := c.Extract(other)
	require.NoError(t, err)
	require.Equal(t, KindList, st.Kind)

	var nilCache *StructureCache
	st, err = nilCache.Extract(tpl)
	require.NoError(t, err)
	require.Equal(t, KindTimeline, st.Kind)
}
