package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/patisserie/internal/httpserver/deps"
	"github.com/MrSnakeDoc/patisserie/internal/logger"
	"github.com/MrSnakeDoc/patisserie/internal/repository"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Error:     "not found",
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// fail answers a request whose content could not be loaded. Repository
// failures are bad gateway, never not found.
func fail(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	// Cancellation is checked first: the repository wraps context errors.
	var rerr *repository.Error
	switch {
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		return
	case errors.Is(err, context.DeadlineExceeded):
		status, msg = http.StatusGatewayTimeout, "content repository timed out"
	case errors.As(err, &rerr):
		status, msg = http.StatusBadGateway, "content repository unavailable"
	}

	d.Logger.Error("page failed",
		logger.String("path", r.URL.Path),
		logger.Int("status", status),
		logger.String("request_id", middleware.GetReqID(r.Context())),
		logger.Error(err))

	writeJSON(w, status, errorResponse{
		Error:     msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}
