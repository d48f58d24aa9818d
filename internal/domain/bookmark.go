package domain

import (
	"context"
	"fmt"
)

// Bookmark is a named alias bound to exactly one document id within a
// release. Bookmarked documents are singleton pages (about, jobs, stores)
// with a dedicated route instead of a list+detail shape.
type Bookmark struct {
	Name       string
	DocumentID string
}

// Bookmarks is the ordered bookmark table of one request.
type Bookmarks []Bookmark

// NameOf returns the name of the bookmark bound to id.
func (b Bookmarks) NameOf(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, bm := range b {
		if bm.DocumentID == id {
			return bm.Name, true
		}
	}
	return "", false
}

// ID returns the document id bound to name.
func (b Bookmarks) ID(name string) (string, bool) {
	for _, bm := range b {
		if bm.Name == name {
			return bm.DocumentID, true
		}
	}
	return "", false
}

// LoadBookmarks fetches the ids bound to names for release, keeping the
// order of names. Unbound names are left out.
func LoadBookmarks(ctx context.Context, repo Repository, names []string, release Release) (Bookmarks, error) {
	bookmarks := make(Bookmarks, 0, len(names))
	for _, name := range names {
		id, ok, err := repo.BookmarkTargetID(ctx, name, release)
		if err != nil {
			return nil, fmt.Errorf("failed to load bookmark %q: %w", name, err)
		}
		if !ok || id == "" {
			continue
		}
		bookmarks = append(bookmarks, Bookmark{Name: name, DocumentID: id})
	}
	return bookmarks, nil
}
