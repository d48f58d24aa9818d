package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/patisserie/internal/httpserver/deps"
	"github.com/MrSnakeDoc/patisserie/internal/logger"
	"github.com/MrSnakeDoc/patisserie/internal/utils"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Reload triggers an immediate refresh of the master ref, typically from a
// publish webhook.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, d.TrustProxy)

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual master ref refresh triggered via endpoint",
				logger.String("client_ip", ip))
			writeJSON(w, http.StatusAccepted, reloadResponse{
				Triggered: true,
				Message:   "refresh triggered",
			})
		default:
			d.Logger.Warn("master ref refresh already pending",
				logger.String("client_ip", ip))
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{
				Message: "refresh already pending, please wait",
			})
		}
	}
}
