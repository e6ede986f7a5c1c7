// Package richtext holds the editor's rich-text markup as a node tree so text
// substitution is a transformation on data rather than on strings. Markup is
// parsed and rendered only at the boundary (Parse / Doc.String).
package richtext

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Doc is a parsed markup fragment.
type Doc struct {
	root *html.Node
}

// Parse parses a markup fragment in body context.
func Parse(markup string) (*Doc, error) {
	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), root)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &Doc{root: root}, nil
}

// String renders the fragment back to markup.
func (d *Doc) String() string {
	var buf bytes.Buffer
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// Text returns the concatenated visible text of the fragment.
func (d *Doc) Text() string {
	var b strings.Builder
	for _, n := range d.textNodes() {
		b.WriteString(n.Data)
	}
	return b.String()
}

// SetText collapses the fragment's runs into one: the first text node takes
// text and every other text node is removed, so element structure and the
// first run's formatting survive while per-run formatting does not.
// A fragment with no text node gets text appended to its first innermost
// element.
func (d *Doc) SetText(text string) {
	nodes := d.textNodes()
	if len(nodes) == 0 {
		target := d.root
		for target.FirstChild != nil && target.FirstChild.Type == html.ElementNode {
			target = target.FirstChild
		}
		target.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		return
	}
	nodes[0].Data = text
	for _, n := range nodes[1:] {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// EnsureFontSize gives the first paragraph an inline font size when no
// element in the fragment declares one.
func (d *Doc) EnsureFontSize(px float64) {
	var hasSize bool
	var firstP *html.Node
	walk(d.root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if strings.Contains(attr(n, "style"), "font-size") {
			hasSize = true
		}
		if firstP == nil && n.DataAtom == atom.P {
			firstP = n
		}
	})
	if hasSize || firstP == nil {
		return
	}
	style := strings.TrimSpace(attr(firstP, "style"))
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	if style != "" {
		style += " "
	}
	setAttr(firstP, "style", style+"font-size: "+formatPx(px)+"px;")
}

func (d *Doc) textNodes() []*html.Node {
	var out []*html.Node
	walk(d.root, func(n *html.Node) {
		if n.Type == html.TextNode {
			out = append(out, n)
		}
	})
	return out
}

// walk visits n's descendants in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		fn(c)
		walk(c, fn)
		c = next
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
