package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/patisserie/internal/httpserver/deps"
	"github.com/MrSnakeDoc/patisserie/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/patisserie/internal/httpserver/mw"
)

func init() { Register(registerPages) }

// registerPages mounts the shop front. Bookmark and detail pages follow the
// routing table, so a custom routes file moves them without code changes.
func registerPages(r chi.Router, d deps.Deps) {
	pages := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	table := d.Site.Routes

	pages.Get("/", handlers.Home(d))
	pages.Get("/blog", handlers.Blog(d))
	pages.Get("/products", handlers.Products(d))
	pages.Get("/products/by-flavour/{flavour}", handlers.ProductsByFlavour(d))
	pages.Get(table.BrokenPattern(), handlers.Broken(d))

	for _, name := range table.BookmarkNames() {
		if pattern, ok := table.BookmarkPattern(name); ok {
			pages.Get(pattern, handlers.Bookmark(d, name))
		}
	}
	for _, typ := range table.Types() {
		if pattern, ok := table.DetailPattern(typ); ok {
			pages.Get(pattern, handlers.Detail(d, typ))
		}
	}
}
