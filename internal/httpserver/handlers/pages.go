package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/patisserie/internal/domain"
	"github.com/MrSnakeDoc/patisserie/internal/httpserver/deps"
	"github.com/MrSnakeDoc/patisserie/internal/predicate"
	"github.com/MrSnakeDoc/patisserie/internal/render"
	"github.com/MrSnakeDoc/patisserie/internal/repository"
)

// Forms and field paths of the shop content model.
const (
	formProducts = "products"
	formFeatured = "featured"
	formBlog     = "blog"

	pathBlogCategory  = "my.blog-post.category"
	pathBlogDate      = "blog-post.date"
	pathProductFlavor = "my.product.flavour"
)

var (
	searchProductTypes = []string{"product", "selection"}
	searchOtherTypes   = []string{"article", "blog-post", "job-offer", "store"}
)

// bookmarkForms lists the form a bookmark page shows below its document.
var bookmarkForms = map[string]string{
	"jobs":   "jobs",
	"stores": "stores",
}

// Home lists the products and the featured documents.
func Home(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := newPage(d, r)
		if err != nil {
			fail(w, r, d, err)
			return
		}

		products, err := d.Repository.Query(p.ctx, formProducts, nil, p.release)
		if err != nil {
			fail(w, r, d, err)
			return
		}
		featured, err := d.Repository.Query(p.ctx, formFeatured, nil, p.release)
		if err != nil {
			fail(w, r, d, err)
			return
		}

		writeJSON(w, http.StatusOK, homeView{
			Products: p.render.Documents(products),
			Featured: p.render.Documents(featured),
		})
	}
}

// Bookmark serves the dedicated page of a bookmarked document, 404 when the
// bookmark is unbound in the release.
func Bookmark(d deps.Deps, name string) http.HandlerFunc {
	form := bookmarkForms[name]

	return func(w http.ResponseWriter, r *http.Request) {
		p, err := newPage(d, r)
		if err != nil {
			fail(w, r, d, err)
			return
		}

		doc, err := p.bookmarked(d, name)
		if err != nil {
			fail(w, r, d, err)
			return
		}
		if doc == nil {
			notFound(w, r)
			return
		}

		view := bookmarkView{Page: p.render.Document(doc)}
		if form != "" {
			items, err := d.Repository.Query(p.ctx, form, nil, p.release)
			if err != nil {
				fail(w, r, d, err)
				return
			}
			view.Items = p.render.Documents(items)
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// Blog lists blog posts newest first, optionally within ?category=.
func Blog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := newPage(d, r)
		if err != nil {
			fail(w, r, d, err)
			return
		}

		category := strings.TrimSpace(r.URL.Query().Get("category"))
		var q predicate.Query
		if category != "" {
			q = predicate.Query{predicate.At(pathBlogCategory, category)}
		}

		posts, err := d.Repository.Query(p.ctx, formBlog, q, p.release)
		if err != nil {
			fail(w, r, d, err)
			return
		}
		domain.SortByDateDesc(posts, pathBlogDate)

		writeJSON(w, http.StatusOK, blogView{
			Category:   category,
			Categories: d.Site.BlogCategories,
			Posts:      p.render.Documents(posts),
		})
	}
}

// Products lists every product with the flavour vocabulary.
func Products(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := newPage(d, r)
		if err != nil {
			fail(w, r, d, err)
			return
		}

		products, err := d.Repository.Query(p.ctx, formProducts, nil, p.release)
		if err != nil {
			fail(w, r, d, err)
			return
		}

		writeJSON(w, http.StatusOK, productsView{
			Flavours: d.Site.Flavours,
			Products: p.render.Documents(products),
		})
	}
}

// ProductsByFlavour lists the products of one flavour, 404 when none.
func ProductsByFlavour(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := newPage(d, r)
		if err != nil {
			fail(w, r, d, err)
			return
		}

		flavour := urlParam(r, "flavour")
		products, err := d.Repository.Query(p.ctx, repository.FormEverything,
			predicate.Query{predicate.At(pathProductFlavor, flavour)}, p.release)
		if err != nil {
			fail(w, r, d, err)
			return
		}
		if len(products) == 0 {
			notFound(w, r)
			return
		}

		writeJSON(w, http.StatusOK, flavourView{
			Flavour:  flavour,
			Label:    d.Site.FlavourLabel(flavour),
			Products: p.render.Documents(products),
		})
	}
}

// Search runs ?q= as a fulltext query over products and selections, then
// over every other page type. An empty query returns empty results.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		view := searchView{Query: query}
		if query == "" {
			view.Products = []render.DocumentView{}
			view.Others = []render.DocumentView{}
			writeJSON(w, http.StatusOK, view)
			return
		}

		p, err := newPage(d, r)
		if err != nil {
			fail(w, r, d, err)
			return
		}

		products, err := d.Repository.Query(p.ctx, repository.FormEverything, predicate.Query{
			predicate.Any("document.type", searchProductTypes...),
			predicate.Fulltext("document", query),
		}, p.release)
		if err != nil {
			fail(w, r, d, err)
			return
		}

		others, err := d.Repository.Query(p.ctx, repository.FormEverything, predicate.Query{
			predicate.Any("document.type", searchOtherTypes...),
			predicate.Fulltext("document", query),
		}, p.release)
		if err != nil {
			fail(w, r, d, err)
			return
		}

		view.Products = p.render.Documents(products)
		view.Others = p.render.Documents(others)
		writeJSON(w, http.StatusOK, view)
	}
}

// Broken is the landing page of links that cannot be followed.
func Broken(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notFound(w, r)
	}
}
