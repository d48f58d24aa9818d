package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/patisserie/internal/httpserver/deps"
	"github.com/MrSnakeDoc/patisserie/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/patisserie/internal/httpserver/mw"
)

func init() { Register(registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.SearchBurst,
		RefillPerIPPerMin: d.SearchRefill,
		TrustProxy:        d.TrustProxy,
	}, d.Logger)

	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger), limit).Get("/search", handlers.Search(d))
}
