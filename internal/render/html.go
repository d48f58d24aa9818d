package render

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/MrSnakeDoc/patisserie/internal/domain"
)

var blockAtoms = map[string]atom.Atom{
	"heading1":     atom.H1,
	"heading2":     atom.H2,
	"heading3":     atom.H3,
	"heading4":     atom.H4,
	"heading5":     atom.H5,
	"heading6":     atom.H6,
	"paragraph":    atom.P,
	"preformatted": atom.Pre,
	"list-item":    atom.Li,
	"o-list-item":  atom.Li,
}

// StructuredText renders blocks to HTML. Consecutive list items share one
// list element. Document hyperlinks are resolved to canonical URLs.
func (r *Renderer) StructuredText(blocks []domain.Block) string {
	var nodes []*html.Node
	var list *html.Node
	listKind := ""

	for _, b := range blocks {
		if b.Kind != "list-item" && b.Kind != "o-list-item" {
			list, listKind = nil, ""
		} else if list == nil || listKind != b.Kind {
			a := atom.Ul
			if b.Kind == "o-list-item" {
				a = atom.Ol
			}
			list, listKind = element(a), b.Kind
			nodes = append(nodes, list)
		}

		n := r.blockNode(b)
		if n == nil {
			continue
		}
		if list != nil {
			list.AppendChild(n)
		} else {
			nodes = append(nodes, n)
		}
	}

	var sb strings.Builder
	for _, n := range nodes {
		// Rendering to a strings.Builder cannot fail.
		_ = html.Render(&sb, n)
	}
	return sb.String()
}

func (r *Renderer) blockNode(b domain.Block) *html.Node {
	if b.Kind == "image" {
		if b.Image == nil || !safeURL(b.Image.URL) {
			return nil
		}
		img := element(atom.Img,
			html.Attribute{Key: "src", Val: b.Image.URL},
			html.Attribute{Key: "alt", Val: b.Image.Alt})
		if b.Image.Width > 0 && b.Image.Height > 0 {
			img.Attr = append(img.Attr,
				html.Attribute{Key: "width", Val: strconv.Itoa(b.Image.Width)},
				html.Attribute{Key: "height", Val: strconv.Itoa(b.Image.Height)})
		}
		p := element(atom.P, html.Attribute{Key: "class", Val: "block-img"})
		p.AppendChild(img)
		return p
	}

	a, ok := blockAtoms[b.Kind]
	if !ok {
		a = atom.P
	}
	n := element(a)

	text := []rune(b.Text)
	spans := slices.Clone(b.Spans)
	slices.SortStableFunc(spans, func(x, y domain.Span) int {
		if x.Start != y.Start {
			return x.Start - y.Start
		}
		return y.End - x.End
	})
	r.appendSpans(n, text, spans, 0, len(text))
	return n
}

// appendSpans renders text[from:to] into parent. spans are sorted by start,
// longest first; a span overlapping the end of an enclosing one is clipped.
func (r *Renderer) appendSpans(parent *html.Node, text []rune, spans []domain.Span, from, to int) {
	pos := from
	for i := 0; i < len(spans); {
		s := spans[i]
		start := clamp(s.Start, pos, to)
		end := clamp(s.End, start, to)

		j := i + 1
		for j < len(spans) && spans[j].Start < end {
			j++
		}

		appendText(parent, text[pos:start])
		container := parent
		if el := r.spanNode(s); el != nil {
			parent.AppendChild(el)
			container = el
		}
		r.appendSpans(container, text, spans[i+1:j], start, end)

		pos = end
		i = j
	}
	appendText(parent, text[pos:to])
}

func (r *Renderer) spanNode(s domain.Span) *html.Node {
	switch s.Kind {
	case "strong":
		return element(atom.Strong)
	case "em":
		return element(atom.Em)
	case "hyperlink":
		href := ""
		switch {
		case s.Link != nil:
			href = r.links.Resolve(*s.Link)
		case safeURL(s.URL):
			href = s.URL
		}
		if href == "" {
			return nil
		}
		return element(atom.A, html.Attribute{Key: "href", Val: href})
	default:
		return nil
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}

func appendText(parent *html.Node, text []rune) {
	if len(text) == 0 {
		return
	}
	parent.AppendChild(&html.Node{Type: html.TextNode, Data: string(text)})
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// safeURL accepts absolute http(s) and mailto URLs only.
func safeURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "mailto":
		return true
	default:
		return false
	}
}
