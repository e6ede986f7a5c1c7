package infographic

import (
	"maps"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"slidegen/internal/richtext"
	"slidegen/internal/slide"
	"slidegen/internal/textfit"
)

const (
	boxPadding = 10.0

	textLineHeight  = 1.5
	shapeLineHeight = 1.2
	smallLineHeight = 1.2
	smallFontSize   = 15.0

	idLength = 10
)

// Maximum wrapped line counts per slot.
const (
	maxLineTitle          = 1
	maxLineSubtitle       = 2
	maxLineBody           = 6
	maxLineListItem       = 2
	maxLineTitledItemText = 3
	maxLineComparisonSide = 2
	maxLineTimelineEvent  = 3
	maxLineItemTitle      = 1
	maxLineItemNumber     = 1
)

// Filler projects Data onto a template.
type Filler struct {
	measurer textfit.Measurer
	newID    func() string
}

type FillerOption func(*Filler)

// WithIDFunc overrides how the new slide identifier is generated.
func WithIDFunc(fn func() string) FillerOption {
	return func(f *Filler) {
		if fn != nil {
			f.newID = fn
		}
	}
}

// NewFiller returns a Filler measuring text with m. A nil m uses
// textfit.NewRuneWidthMeasurer.
func NewFiller(m textfit.Measurer, opts ...FillerOption) *Filler {
	if m == nil {
		m = textfit.NewRuneWidthMeasurer()
	}
	f := &Filler{measurer: m, newID: shortID}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fill is NewFiller(nil).Fill.
func Fill(st Structure, d Data) slide.Slide {
	return NewFiller(nil).Fill(st, d)
}

// Fill returns a new slide built from st.Template with d's text written into
// the matching elements. The template is not modified. Elements without
// matching data, and item elements past min(len(d.Items), st.ItemCount),
// are copied unchanged. Notes are never written.
func (f *Filler) Fill(st Structure, d Data) slide.Slide {
	d = Conform(d, st)
	tpl := st.Template
	out := tpl.Clone()
	out.ID = f.nextID(tpl.ID)

	limit := min(len(d.Items), st.ItemCount)
	itemRank := rankOf(ranked(tpl, withRole(slide.RoleItem)))
	titleRank := rankOf(ranked(tpl, withRole(slide.RoleItemTitle)))
	numberRank := rankOf(ranked(tpl, withRole(slide.RoleItemNumber)))
	// Each side is ranked on its own: the i-th left and the i-th right
	// element both show pair i.
	sideRank := rankOf(ranked(tpl, itemOnSide(slide.SideLeft)))
	maps.Copy(sideRank, rankOf(ranked(tpl, itemOnSide(slide.SideRight))))

	for i, el := range out.Elements {
		switch el.Role() {
		case slide.RoleTitle:
			if d.Title != "" {
				out.Elements[i] = f.fillText(el, d.Title, maxLineTitle)
			}
		case slide.RoleSubtitle:
			if d.Subtitle != "" {
				out.Elements[i] = f.fillText(el, d.Subtitle, maxLineSubtitle)
			}
		case slide.RoleContent:
			if d.Body != "" {
				out.Elements[i] = f.fillText(el, d.Body, maxLineBody)
			}
		case slide.RoleItem:
			ranks := itemRank
			if st.Kind == KindComparison {
				ranks = sideRank
			}
			rank, ok := ranks[i]
			if !ok || rank >= limit {
				continue
			}
			if text, maxLine, ok := itemText(st.Kind, el, d.Items[rank]); ok {
				out.Elements[i] = f.fillText(el, text, maxLine)
			}
		case slide.RoleItemTitle:
			rank, ok := titleRank[i]
			if !ok || rank >= limit {
				continue
			}
			if item := d.Items[rank]; item.Shape == ShapeTitled {
				out.Elements[i] = f.fillText(el, item.Title, maxLineItemTitle)
			}
		case slide.RoleItemNumber:
			rank, ok := numberRank[i]
			if !ok || rank >= limit {
				continue
			}
			text := strconv.Itoa(rank + 1)
			if item := d.Items[rank]; st.Kind == KindTimeline && item.Shape == ShapeTimeline {
				text = item.Year
			}
			out.Elements[i] = f.fillText(el, text, maxLineItemNumber)
		}
	}
	return out
}

// itemText picks the text an item element shows for item, and the line
// budget of that slot.
func itemText(kind Kind, el slide.Element, item Item) (string, int, bool) {
	switch kind {
	case KindComparison:
		if item.Shape != ShapeComparison {
			return "", 0, false
		}
		switch el.Side {
		case slide.SideLeft:
			return item.Left, maxLineComparisonSide, true
		case slide.SideRight:
			return item.Right, maxLineComparisonSide, true
		}
	case KindTimeline:
		if item.Shape == ShapeTimeline {
			return item.Event, maxLineTimelineEvent, true
		}
	default:
		switch item.Shape {
		case ShapeText:
			return item.Text, maxLineListItem, true
		case ShapeTitled:
			return item.Text, maxLineTitledItemText, true
		}
	}
	return "", 0, false
}

// fillText writes text into el and shrinks its font until the text fits the
// element's inner box.
func (f *Filler) fillText(el slide.Element, text string, maxLine int) slide.Element {
	markup := el.RichText()
	font := richtext.FontInfo(markup)

	lineHeight := shapeLineHeight
	if el.Type == slide.TypeText {
		lineHeight = textLineHeight
		if el.LineHeight != nil && *el.LineHeight > 0 {
			lineHeight = *el.LineHeight
		}
	}
	size := textfit.AdaptFontSize(f.measurer, textfit.Params{
		Text:       text,
		FontSize:   font.Size,
		FontFamily: font.Family,
		Width:      el.Width - 2*boxPadding - 2,
		Height:     el.Height - 2*boxPadding - 2,
		LineHeight: lineHeight,
		MaxLine:    maxLine,
	})

	out := el.WithRichText(richtext.Rewrite(markup, text, size))
	if out.Type == slide.TypeText && size < smallFontSize {
		lh := smallLineHeight
		out.LineHeight = &lh
	}
	return out
}

func (f *Filler) nextID(templateID string) string {
	id := f.newID()
	for id == templateID {
		id = shortID()
	}
	return id
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}
