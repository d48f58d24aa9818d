package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/patisserie/internal/cache"
	"github.com/MrSnakeDoc/patisserie/internal/httpserver/deps"
	"github.com/MrSnakeDoc/patisserie/internal/logger"
)

type flushResponse struct {
	Memory int `json:"memory"`
	Redis  int `json:"redis"`
}

// FlushCache drops every cached repository response, or only those of
// ?ref= when given.
func FlushCache(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := r.URL.Query().Get("ref")
		var res flushResponse

		if d.MemoryCache != nil {
			if ref != "" {
				res.Memory = d.MemoryCache.FlushPrefix(cache.RefPrefix(ref))
			} else {
				res.Memory = d.MemoryCache.Count()
				d.MemoryCache.Flush()
			}
		}

		if d.RedisStore != nil {
			var err error
			if ref != "" {
				res.Redis, err = d.RedisStore.FlushRef(r.Context(), ref)
			} else {
				res.Redis, err = d.RedisStore.Flush(r.Context())
			}
			if err != nil {
				d.Logger.Error("failed to flush redis cache", logger.Error(err))
				writeJSON(w, http.StatusBadGateway, errorResponse{Error: "redis flush failed"})
				return
			}
		}

		d.Logger.Info("cache flushed",
			logger.String("ref", ref),
			logger.Int("memory", res.Memory),
			logger.Int("redis", res.Redis))
		writeJSON(w, http.StatusOK, res)
	}
}
