package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/patisserie/internal/domain"
	"github.com/MrSnakeDoc/patisserie/internal/httpserver/deps"
	"github.com/MrSnakeDoc/patisserie/internal/render"
	"github.com/MrSnakeDoc/patisserie/internal/utils"
)

// page is the per request state shared by every page handler.
type page struct {
	ctx       context.Context
	release   domain.Release
	bookmarks domain.Bookmarks
	base      string
	links     *domain.LinkResolver
	render    *render.Renderer
}

// newPage resolves the release named by ?ref= (master otherwise) and loads
// the bookmark table of that release.
func newPage(d deps.Deps, r *http.Request) (*page, error) {
	ctx := r.Context()

	release, err := domain.ResolveRelease(ctx, d.Refs, r.URL.Query().Get("ref"))
	if err != nil {
		return nil, err
	}

	bookmarks, err := domain.LoadBookmarks(ctx, d.Repository, d.Site.Routes.BookmarkNames(), release)
	if err != nil {
		return nil, err
	}

	base := d.PublicURL
	if base == "" {
		base = utils.RequestBaseURL(r, d.TrustProxy)
	}

	links := domain.NewLinkResolver(d.Site.Routes, bookmarks, release, base)
	return &page{
		ctx:       ctx,
		release:   release,
		bookmarks: bookmarks,
		base:      base,
		links:     links,
		render:    render.NewRenderer(links),
	}, nil
}

// bookmarked fetches the document bound to name, nil when the bookmark is
// unbound or its document is gone.
func (p *page) bookmarked(d deps.Deps, name string) (*domain.Document, error) {
	id, ok := p.bookmarks.ID(name)
	if !ok {
		return nil, nil
	}
	doc, err := d.Repository.Document(p.ctx, id, p.release)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmark %q: %w", name, err)
	}
	return doc, nil
}

// urlParam returns a decoded path parameter. chi matches on the raw path
// when the request path holds escaped characters.
func urlParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}
