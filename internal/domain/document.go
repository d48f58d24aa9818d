package domain

import "time"

// Document is a read-only projection of a content item fetched from the
// repository for one release.
//
// A Document is uniquely identified by its ID, which never changes. Its slug
// may drift as the document is edited; Slugs lists them newest first.
type Document struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the stable repository identifier.
	ID string `json:"id"`

	// Type is the schema tag of the document.
	// Example: product, store, blog-post
	Type string `json:"type"`

	// ─────────────────────────────
	// Naming (mutable over the document's lifetime)
	// ─────────────────────────────

	// Slugs holds the canonical slug first, followed by older ones.
	Slugs []string `json:"slugs,omitempty"`

	Tags []string `json:"tags,omitempty"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Fields maps a field path ("<type>.<field>") to its fragments in
	// authoring order. Single-valued fields hold exactly one fragment.
	Fields map[string][]Fragment `json:"fields,omitempty"`
}

// Slug returns the canonical slug, or "" when the repository reported none.
func (d *Document) Slug() string {
	if d == nil || len(d.Slugs) == 0 {
		return ""
	}
	return d.Slugs[0]
}

// Get returns the first fragment stored at path.
func (d *Document) Get(path string) (Fragment, bool) {
	if d == nil {
		return Fragment{}, false
	}
	frags := d.Fields[path]
	if len(frags) == 0 {
		return Fragment{}, false
	}
	return frags[0], true
}

// GetAll returns every fragment stored at path, in authoring order.
func (d *Document) GetAll(path string) []Fragment {
	if d == nil {
		return nil
	}
	return d.Fields[path]
}

// Text returns the plain text of the fragment at path.
func (d *Document) Text(path string) string {
	f, ok := d.Get(path)
	if !ok {
		return ""
	}
	return f.PlainText()
}

// Date returns the date or timestamp stored at path.
func (d *Document) Date(path string) (time.Time, bool) {
	f, ok := d.Get(path)
	if !ok {
		return time.Time{}, false
	}
	if f.Kind != KindDate && f.Kind != KindTimestamp {
		return time.Time{}, false
	}
	if f.Time.IsZero() {
		return time.Time{}, false
	}
	return f.Time, true
}

// LinksAt returns the document links stored at path, in authoring order.
// Fragments of any other kind are skipped. Duplicates are kept.
func (d *Document) LinksAt(path string) []Link {
	frags := d.GetAll(path)
	links := make([]Link, 0, len(frags))
	for _, f := range frags {
		if f.Kind == KindDocumentLink && f.Link != nil {
			links = append(links, *f.Link)
		}
	}
	return links
}

// AsLink returns a link pointing at the document itself, as if it had been
// authored in another document.
func (d *Document) AsLink() Link {
	return Link{
		TargetType: d.Type,
		TargetID:   d.ID,
		TargetSlug: d.Slug(),
	}
}
