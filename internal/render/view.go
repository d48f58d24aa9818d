// Package render turns repository documents into JSON-ready views whose
// links all point at canonical site URLs.
package render

import (
	"strings"
	"time"

	"github.com/MrSnakeDoc/patisserie/internal/domain"
)

// DocumentView is the rendered form of a document.
type DocumentView struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Slug   string         `json:"slug"`
	URL    string         `json:"url"`
	Tags   []string       `json:"tags,omitempty"`
	Fields map[string]any `json:"fields"`
}

// ImageView is a rendered image fragment.
type ImageView struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// LinkView is a rendered link fragment.
type LinkView struct {
	URL    string `json:"url"`
	Broken bool   `json:"broken,omitempty"`
}

// Renderer renders documents for one request.
type Renderer struct {
	links *domain.LinkResolver
}

func NewRenderer(links *domain.LinkResolver) *Renderer {
	return &Renderer{links: links}
}

// Document renders doc. Field names drop the "<type>." prefix of the
// document's own type.
func (r *Renderer) Document(doc *domain.Document) DocumentView {
	v := DocumentView{
		ID:     doc.ID,
		Type:   doc.Type,
		Slug:   doc.Slug(),
		URL:    r.links.DocumentURL(doc),
		Tags:   doc.Tags,
		Fields: make(map[string]any, len(doc.Fields)),
	}

	prefix := doc.Type + "."
	for path, frags := range doc.Fields {
		name := strings.TrimPrefix(path, prefix)
		switch len(frags) {
		case 0:
		case 1:
			v.Fields[name] = r.Fragment(frags[0])
		default:
			values := make([]any, 0, len(frags))
			for _, f := range frags {
				values = append(values, r.Fragment(f))
			}
			v.Fields[name] = values
		}
	}
	return v
}

// Documents renders docs in order. The result is never nil.
func (r *Renderer) Documents(docs []*domain.Document) []DocumentView {
	views := make([]DocumentView, 0, len(docs))
	for _, d := range docs {
		if d == nil {
			continue
		}
		views = append(views, r.Document(d))
	}
	return views
}

// Fragment renders one fragment to a JSON friendly value.
func (r *Renderer) Fragment(f domain.Fragment) any {
	switch f.Kind {
	case domain.KindText:
		return f.Text
	case domain.KindNumber:
		return f.Number
	case domain.KindDate:
		if f.Time.IsZero() {
			return nil
		}
		return f.Time.Format("2006-01-02")
	case domain.KindTimestamp:
		if f.Time.IsZero() {
			return nil
		}
		return f.Time.Format(time.RFC3339)
	case domain.KindImage:
		return imageView(f.Image)
	case domain.KindDocumentLink:
		if f.Link == nil {
			return LinkView{URL: r.links.BrokenURL(), Broken: true}
		}
		return LinkView{URL: r.links.Resolve(*f.Link), Broken: f.Link.Broken}
	case domain.KindWebLink:
		if !safeURL(f.URL) {
			return nil
		}
		return LinkView{URL: f.URL}
	case domain.KindStructuredText:
		return r.StructuredText(f.Blocks)
	default:
		return nil
	}
}

func imageView(img *domain.Image) *ImageView {
	if img == nil {
		return nil
	}
	return &ImageView{URL: img.URL, Alt: img.Alt, Width: img.Width, Height: img.Height}
}
