package domain

import (
	"strings"
	"time"
)

// FragmentKind tags the value held by a Fragment.
type FragmentKind string

const (
	KindText           FragmentKind = "Text"
	KindStructuredText FragmentKind = "StructuredText"
	KindNumber         FragmentKind = "Number"
	KindDate           FragmentKind = "Date"
	KindTimestamp      FragmentKind = "Timestamp"
	KindImage          FragmentKind = "Image"
	KindDocumentLink   FragmentKind = "Link.document"
	KindWebLink        FragmentKind = "Link.web"
)

// Fragment is one typed value found in a document field. Only the member
// matching Kind is meaningful.
type Fragment struct {
	Kind   FragmentKind `json:"kind"`
	Text   string       `json:"text,omitempty"`
	Number float64      `json:"number,omitempty"`
	Time   time.Time    `json:"time,omitzero"`
	Blocks []Block      `json:"blocks,omitempty"`
	Image  *Image       `json:"image,omitempty"`
	Link   *Link        `json:"link,omitempty"`
	URL    string       `json:"url,omitempty"`
}

// PlainText flattens the fragment to text. Non textual kinds yield "".
func (f Fragment) PlainText() string {
	switch f.Kind {
	case KindText:
		return f.Text
	case KindStructuredText:
		parts := make([]string, 0, len(f.Blocks))
		for _, b := range f.Blocks {
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

// Block is one paragraph-level element of structured text.
// Kind follows the repository vocabulary: heading1..heading6, paragraph,
// preformatted, list-item, o-list-item, image.
type Block struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Spans []Span `json:"spans,omitempty"`
	Image *Image `json:"image,omitempty"`
}

// Span decorates the rune range [Start, End) of a block's text.
// Kind is strong, em or hyperlink; hyperlinks carry either Link or URL.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Kind  string `json:"kind"`
	Link  *Link  `json:"link,omitempty"`
	URL   string `json:"url,omitempty"`
}

type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Link is an authored reference from one document to another.
//
// TargetID and TargetSlug are a snapshot taken when the link was authored
// and may be stale. A Broken link must never be dereferenced.
type Link struct {
	TargetType string `json:"type,omitempty"`
	TargetID   string `json:"id"`
	TargetSlug string `json:"slug,omitempty"`
	Broken     bool   `json:"broken,omitempty"`
}
