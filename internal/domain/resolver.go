package domain

import "strings"

// LinkResolver turns links found in content into canonical absolute URLs for
// one request. It holds no mutable state: the route table is shared and
// immutable, the bookmark table and release are fixed per request.
type LinkResolver struct {
	routes    *RouteTable
	bookmarks Bookmarks
	release   Release
	base      string
}

// NewLinkResolver builds the resolver of one request. baseURL is the
// scheme+host (and optional path prefix) generated URLs are rooted at.
func NewLinkResolver(routes *RouteTable, bookmarks Bookmarks, release Release, baseURL string) *LinkResolver {
	return &LinkResolver{
		routes:    routes,
		bookmarks: bookmarks,
		release:   release,
		base:      strings.TrimSuffix(baseURL, "/"),
	}
}

// Resolve returns the absolute URL a link points to. First match wins:
//  1. target bound to a bookmark: the bookmark's page
//  2. broken link: the broken-link page
//  3. target type with a detail route: that route
//  4. anything else: the broken-link page
//
// Bookmarks come first because a bookmarked document's type does not say
// which page shows it.
func (lr *LinkResolver) Resolve(link Link) string {
	if name, ok := lr.bookmarks.NameOf(link.TargetID); ok {
		if r, ok := lr.routes.bookmarkRoute(name); ok {
			if u, ok := lr.expand(r, "", ""); ok {
				return u
			}
		}
	}

	if link.Broken {
		return lr.BrokenURL()
	}

	if r, ok := lr.routes.types[link.TargetType]; ok && link.TargetID != "" {
		if u, ok := lr.expand(r, link.TargetID, link.TargetSlug); ok {
			return u
		}
	}

	return lr.BrokenURL()
}

// DocumentURL returns the canonical URL of a fetched document.
func (lr *LinkResolver) DocumentURL(doc *Document) string {
	if doc == nil {
		return lr.BrokenURL()
	}
	return lr.Resolve(doc.AsLink())
}

// BrokenURL is the fallback page for links that cannot be followed.
func (lr *LinkResolver) BrokenURL() string {
	if u, ok := lr.expand(lr.routes.broken, "", ""); ok {
		return u
	}
	return lr.base + "/"
}

func (lr *LinkResolver) expand(r route, id, slug string) (string, bool) {
	path, err := expand(r, id, slug, lr.release.URLRef())
	if err != nil || path == "" {
		return "", false
	}
	return lr.base + path, true
}
