package richtext

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultFontSize   = 16.0
	DefaultFontFamily = "Microsoft Yahei"
)

var (
	reFontSize    = regexp.MustCompile(`(?i)font-size:\s*(\d+(?:\.\d+)?)\s*px`)
	reFontFamily  = regexp.MustCompile(`(?i)font-family:\s*['"]?([^'";]+)['"]?\s*(?:;|>|$)`)
	reAnyFontSize = regexp.MustCompile(`font-size:\s*[^;"'<>]*?px`)
	reTag         = regexp.MustCompile(`<[^>]*>`)
)

// Font is the first inline font declaration found in a fragment.
type Font struct {
	Size   float64
	Family string
}

// FontInfo extracts the first inline font size and family, falling back to
// the editor defaults.
func FontInfo(markup string) Font {
	f := Font{Size: DefaultFontSize, Family: DefaultFontFamily}
	if m := reFontSize.FindStringSubmatch(markup); m != nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64); err == nil {
			f.Size = v
		}
	}
	if m := reFontFamily.FindStringSubmatch(html.UnescapeString(markup)); m != nil {
		if fam := strings.TrimSpace(m[1]); fam != "" {
			f.Family = fam
		}
	}
	return f
}

// ReplaceFontSize rewrites every inline pixel font size to px.
func ReplaceFontSize(markup string, px float64) string {
	return reAnyFontSize.ReplaceAllLiteralString(markup, "font-size: "+formatPx(px)+"px")
}

// PlainText returns the visible, trimmed text of a fragment.
func PlainText(markup string) string {
	doc, err := Parse(markup)
	if err != nil {
		return strings.TrimSpace(html.UnescapeString(reTag.ReplaceAllString(markup, "")))
	}
	return strings.TrimSpace(doc.Text())
}

// Rewrite replaces the fragment's text with text and sets every inline font
// size to px. It never fails: unparsable markup is replaced by a single
// paragraph.
func Rewrite(markup, text string, px float64) string {
	doc, err := Parse(markup)
	if err != nil {
		doc, _ = Parse("<p></p>")
	}
	doc.SetText(text)
	doc.EnsureFontSize(DefaultFontSize)
	return ReplaceFontSize(doc.String(), px)
}

func formatPx(px float64) string {
	return strconv.FormatFloat(px, 'f', -1, 64)
}
