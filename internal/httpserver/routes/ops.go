package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/patisserie/internal/httpserver/deps"
	"github.com/MrSnakeDoc/patisserie/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/patisserie/internal/httpserver/mw"
)

func init() { Register(registerOps) }

// registerOps mounts the operational endpoints, reachable from the allowed
// CIDRs only.
func registerOps(r chi.Router, d deps.Deps) {
	ops := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))

	ops.Get("/healthz", handlers.Healthz(d))
	ops.Get("/readyz", handlers.Readyz(d))
	ops.Get("/infra", handlers.Infra(d))
	ops.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	ops.Post("/reload", handlers.Reload(d))
	ops.Post("/cache/flush", handlers.FlushCache(d))
}
