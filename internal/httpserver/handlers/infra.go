package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/patisserie/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	MasterRef   string `json:"master_ref,omitempty"`
	Entries     *int   `json:"entries,omitempty"`
	LastRefresh string `json:"last_refresh,omitempty"`
	LastSweep   string `json:"last_sweep,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the repository, cache tiers and master ref.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		components := map[string]componentStatus{
			"repository":   checkRepository(r.Context(), d),
			"memory_cache": checkMemoryCache(d),
			"redis":        checkRedis(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if repo, ok := components["repository"]; ok && !repo.OK {
		return "critical"
	}
	if redis, ok := components["redis"]; ok && !redis.OK && redis.Mode != "disabled" {
		return "degraded"
	}
	return "optimal"
}

func checkRepository(ctx context.Context, d deps.Deps) componentStatus {
	st := componentStatus{OK: true, LastRefresh: "never"}
	if d.Refs != nil {
		st.MasterRef = d.Refs.Current()
		if t := d.Refs.LastRefresh(); !t.IsZero() {
			st.LastRefresh = t.Format(time.RFC3339)
		}
	}
	if d.RepositoryPing != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := d.RepositoryPing(ctx); err != nil {
			st.OK = false
			st.Impact = "pages-unavailable"
			st.Error = err.Error()
		}
	}
	return st
}

func checkMemoryCache(d deps.Deps) componentStatus {
	if d.MemoryCache == nil {
		return componentStatus{OK: false, Mode: "disabled"}
	}
	n := d.MemoryCache.Count()
	st := componentStatus{OK: true, Entries: &n, LastSweep: "never"}
	if t := d.MemoryCache.LastSweep(); !t.IsZero() {
		st.LastSweep = t.Format(time.RFC3339)
	}
	return st
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisStore == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "cache-not-shared",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisStore.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "cache-not-shared",
			Error:  err.Error(),
		}
	}

	return componentStatus{OK: true, Mode: "shared"}
}
