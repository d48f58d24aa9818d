package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/patisserie/internal/domain"
	"github.com/MrSnakeDoc/patisserie/internal/httpserver/deps"
	"github.com/MrSnakeDoc/patisserie/internal/logger"
	"github.com/MrSnakeDoc/patisserie/internal/render"
)

// relatedSet is a field of links shown as a list of documents.
type relatedSet struct {
	name string // key in the view
	path string
	typ  string
}

// detailLayout describes the extra content of a detail page.
type detailLayout struct {
	// bookmark must be bound and its document rendered along.
	bookmark string
	related  []relatedSet
}

var detailLayouts = map[string]detailLayout{
	"product": {
		related: []relatedSet{{name: "products", path: "product.related", typ: "product"}},
	},
	"selection": {
		related: []relatedSet{{name: "products", path: "selection.product", typ: "product"}},
	},
	"blog-post": {
		related: []relatedSet{
			{name: "products", path: "blog-post.relatedproduct", typ: "product"},
			{name: "posts", path: "blog-post.relatedpost", typ: "blog-post"},
		},
	},
	"job-offer": {
		bookmark: "jobs",
	},
}

// Detail serves the detail page of documents of type typ at
// <route>/{id}/{slug}. A stale slug redirects to the canonical one with the
// query string preserved; an unknown id, or a document of another type,
// is not found.
func Detail(d deps.Deps, typ string) http.HandlerFunc {
	layout := detailLayouts[typ]

	return func(w http.ResponseWriter, r *http.Request) {
		p, err := newPage(d, r)
		if err != nil {
			fail(w, r, d, err)
			return
		}

		var parent *domain.Document
		if layout.bookmark != "" {
			parent, err = p.bookmarked(d, layout.bookmark)
			if err != nil {
				fail(w, r, d, err)
				return
			}
			if parent == nil {
				notFound(w, r)
				return
			}
		}

		id := urlParam(r, "id")
		slug := urlParam(r, "slug")

		doc, err := d.Repository.Document(p.ctx, id, p.release)
		if err != nil {
			fail(w, r, d, err)
			return
		}
		if doc != nil && doc.Type != typ {
			doc = nil
		}

		verdict := domain.CheckSlug(doc, slug)
		d.Metrics.IncVerdict(typ, verdict.Kind().String())

		switch verdict.Kind() {
		case domain.VerdictNotFound:
			notFound(w, r)

		case domain.VerdictRedirect:
			canonical := verdict.CanonicalSlug()
			path, ok := d.Site.Routes.DetailPath(typ, id, canonical)
			if canonical == "" || !ok {
				d.Logger.Warn("document has no canonical slug",
					logger.String("type", typ),
					logger.String("id", id),
					logger.String("ref", p.release.Ref))
				notFound(w, r)
				return
			}
			target := p.base + path
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusSeeOther)

		case domain.VerdictOK:
			view := detailView{Document: p.render.Document(doc)}
			if parent != nil {
				pv := p.render.Document(parent)
				view.Page = &pv
			}
			if len(layout.related) > 0 {
				view.Related = make(map[string][]render.DocumentView, len(layout.related))
			}
			for _, rs := range layout.related {
				docs, err := domain.ResolveRelated(p.ctx, d.Repository, doc, rs.path, rs.typ, p.release)
				if err != nil {
					fail(w, r, d, err)
					return
				}
				view.Related[rs.name] = p.render.Documents(docs)
			}
			writeJSON(w, http.StatusOK, view)
		}
	}
}
