package api

import (
	"errors"
	"net/http"

	"github.com/quizdeck/backend/internal/domain/team"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateTeamRequest struct {
	Name string `json:"name" example:"The Quizzards"`
}

func (r *CreateTeamRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type TeamResponse struct {
	ID     string `json:"id"`
	PackID string `json:"pack_id"`
	Name   string `json:"name"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /packs/{packID}/teams
func (h *Handler) createTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.store.GetPack(ctx, r.PathValue("packID"))
	if h.handleStoreError(w, err, "pack") {
		return
	}

	var req CreateTeamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	t := team.New(p.ID, req.Name)
	if err := h.store.SaveTeam(ctx, t); err != nil {
		h.logger.Error("failed to save team", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save team")
		return
	}

	respondJSON(w, http.StatusCreated, TeamResponse{ID: t.ID, PackID: t.PackID, Name: t.Name})
}

// GET /packs/{packID}/teams
func (h *Handler) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.ListTeams(r.Context(), r.PathValue("packID"))
	if err != nil {
		h.logger.Error("failed to list teams", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load teams")
		return
	}

	out := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamResponse{ID: t.ID, PackID: t.PackID, Name: t.Name})
	}
	respondJSON(w, http.StatusOK, out)
}

// DELETE /teams/{teamID}
func (h *Handler) deleteTeam(w http.ResponseWriter, r *http.Request) {
	if h.handleStoreError(w, h.store.DeleteTeam(r.Context(), r.PathValue("teamID")), "team") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
