// Package markup implements the inline formatting engine for text blocks.
// Block values are stored as a small HTML subset (<b>, <i>, <br> and
// <span class="spoiler">); the engine parses that into a flat run of styled
// characters, applies range operations on rune offsets into the plain text
// and serializes back to a stable form.
package markup

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Style is one inline style a character range can carry
type Style string

const (
	StyleBold    Style = "bold"
	StyleItalic  Style = "italic"
	StyleSpoiler Style = "spoiler" // Obscured until clicked in view mode
)

// styleSet is the set of styles active on one character.
type styleSet struct {
	bold    bool
	italic  bool
	spoiler bool
}

func (s styleSet) has(style Style) bool {
	switch style {
	case StyleBold:
		return s.bold
	case StyleItalic:
		return s.italic
	case StyleSpoiler:
		return s.spoiler
	}
	return false
}

func (s styleSet) with(style Style, on bool) styleSet {
	switch style {
	case StyleBold:
		s.bold = on
	case StyleItalic:
		s.italic = on
	case StyleSpoiler:
		s.spoiler = on
	}
	return s
}

// styledRune is one character of the plain text with its active styles.
type styledRune struct {
	r      rune
	styles styleSet
}

// parse decodes a stored markup value into its styled characters. Unknown
// elements are traversed transparently; <br> becomes a newline.
func parse(value string) ([]styledRune, error) {
	ctx := &xhtml.Node{Type: xhtml.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := xhtml.ParseFragment(strings.NewReader(value), ctx)
	if err != nil {
		return nil, err
	}
	var runes []styledRune
	for _, n := range nodes {
		runes = collect(n, styleSet{}, runes)
	}
	return runes, nil
}

func collect(n *xhtml.Node, active styleSet, runes []styledRune) []styledRune {
	switch n.Type {
	case xhtml.TextNode:
		for _, r := range n.Data {
			runes = append(runes, styledRune{r: r, styles: active})
		}
		return runes
	case xhtml.ElementNode:
		switch n.DataAtom {
		case atom.B, atom.Strong:
			active.bold = true
		case atom.I, atom.Em:
			active.italic = true
		case atom.Br:
			return append(runes, styledRune{r: '\n', styles: active})
		case atom.Span:
			if hasClass(n, "spoiler") {
				active.spoiler = true
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		runes = collect(c, active, runes)
	}
	return runes
}

func hasClass(n *xhtml.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// serialize renders styled characters back to the stored markup form.
// Adjacent characters with identical styles are grouped; tags nest in a
// fixed order (spoiler outermost, then bold, then italic) so output is
// stable regardless of how the input was nested.
func serialize(runes []styledRune) string {
	var sb strings.Builder
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j].styles == runes[i].styles {
			j++
		}
		writeRun(&sb, runes[i:j], runes[i].styles)
		i = j
	}
	return sb.String()
}

func writeRun(sb *strings.Builder, run []styledRune, styles styleSet) {
	if styles.spoiler {
		sb.WriteString(`<span class="spoiler">`)
	}
	if styles.bold {
		sb.WriteString("<b>")
	}
	if styles.italic {
		sb.WriteString("<i>")
	}
	for _, sr := range run {
		if sr.r == '\n' {
			sb.WriteString("<br/>")
			continue
		}
		sb.WriteString(html.EscapeString(string(sr.r)))
	}
	if styles.italic {
		sb.WriteString("</i>")
	}
	if styles.bold {
		sb.WriteString("</b>")
	}
	if styles.spoiler {
		sb.WriteString("</span>")
	}
}

// PlainText strips all markup, returning the text the user sees. Range
// offsets used by the formatting operations index into this text.
func PlainText(value string) (string, error) {
	runes, err := parse(value)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, sr := range runes {
		sb.WriteRune(sr.r)
	}
	return sb.String(), nil
}

// Length returns the rune length of the plain text.
func Length(value string) (int, error) {
	runes, err := parse(value)
	if err != nil {
		return 0, err
	}
	return len(runes), nil
}
