// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/quizdeck/backend/internal/media"
	"github.com/quizdeck/backend/internal/player"
	"github.com/quizdeck/backend/internal/service"
	"github.com/quizdeck/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store   *store.SQLiteStore
	media   *media.Storage
	suggest *service.SuggestService
	players *player.Manager
	cookies *sessions.CookieStore
	logger  *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(
	s *store.SQLiteStore,
	m *media.Storage,
	suggest *service.SuggestService,
	players *player.Manager,
	cookies *sessions.CookieStore,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		store:   s,
		media:   m,
		suggest: suggest,
		players: players,
		cookies: cookies,
		logger:  logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

type validator interface {
	Validate() error
}

// decodeAndValidate decodes the request body into v and, when v knows how
// to validate itself, runs that too. Returns false if a response was
// already written (caller should return).
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if val, ok := v.(validator); ok {
		if err := val.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return false
		}
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}
