// Package textfit picks a font size at which a piece of text fits a text box.
package textfit

import (
	"math"

	"github.com/mattn/go-runewidth"
)

const (
	MinFontSize = 10.0

	// Sizes above this shrink by 2 per step, sizes at or below it by 1.
	coarseStepAbove = 22.0
)

// Measurer reports the rendered width of a single line of text.
type Measurer interface {
	MeasureWidth(text string, fontSize float64, fontFamily string) float64
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(text string, fontSize float64, fontFamily string) float64

func (f MeasurerFunc) MeasureWidth(text string, fontSize float64, fontFamily string) float64 {
	return f(text, fontSize, fontFamily)
}

// RuneWidthMeasurer estimates width from East Asian cell widths: a narrow
// cell is EmPerCell em wide, a wide (CJK) cell twice that.
type RuneWidthMeasurer struct {
	EmPerCell float64
}

func NewRuneWidthMeasurer() RuneWidthMeasurer {
	return RuneWidthMeasurer{EmPerCell: 0.5}
}

func (m RuneWidthMeasurer) MeasureWidth(text string, fontSize float64, _ string) float64 {
	em := m.EmPerCell
	if em <= 0 {
		em = 0.5
	}
	return float64(runewidth.StringWidth(text)) * em * fontSize
}

// Params describes the text and the box it has to fit.
type Params struct {
	Text       string
	FontSize   float64
	FontFamily string
	Width      float64
	Height     float64
	LineHeight float64
	MaxLine    int
}

// AdaptFontSize shrinks p.FontSize until the wrapped text fits. When MaxLine
// is above one and a height budget is known, fitting the total height is
// enough; otherwise the wrapped line count must not exceed MaxLine. The
// result is never below MinFontSize.
func AdaptFontSize(m Measurer, p Params) float64 {
	size := p.FontSize
	for size >= MinFontSize {
		width := m.MeasureWidth(p.Text, size, p.FontFamily)
		lines := wrappedLines(width, p.Width)

		if p.MaxLine > 1 && p.Height > 0 {
			if lines*lineBoxHeight(size, p.LineHeight) <= p.Height {
				return size
			}
		}
		if lines <= float64(p.MaxLine) {
			return size
		}

		if size <= coarseStepAbove {
			size--
		} else {
			size -= 2
		}
	}
	return MinFontSize
}

func wrappedLines(textWidth, boxWidth float64) float64 {
	if textWidth <= 0 {
		return 0
	}
	if boxWidth <= 0 {
		return math.Inf(1)
	}
	return math.Ceil(textWidth / boxWidth)
}

// lineBoxHeight is the height of one rendered line. Small fonts are laid out
// with a fixed 1.2 multiplier regardless of the box's line height.
func lineBoxHeight(size, lineHeight float64) float64 {
	mult := lineHeight
	if size < 15 {
		mult = 1.2
	}
	return math.Max(size, 16) * mult * 1.2
}
