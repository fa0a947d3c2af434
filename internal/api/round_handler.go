package api

import (
	"errors"
	"net/http"

	"github.com/quizdeck/backend/internal/domain/pack"
	"github.com/quizdeck/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateRoundRequest struct {
	Title string `json:"title" example:"Music Round"`
}

func (r *CreateRoundRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

type UpdateRoundRequest struct {
	Title           *string `json:"title,omitempty"`
	Order           *int    `json:"order,omitempty"`
	DefaultTimerSec *int    `json:"default_timer_sec,omitempty"`
	RecapEnabled    *bool   `json:"recap_enabled,omitempty"`
	IntroMediaPath  *string `json:"intro_media_path,omitempty"`
}

func (r *UpdateRoundRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return errors.New("title cannot be empty")
	}
	if r.Order != nil && *r.Order < 1 {
		return errors.New("order must be at least 1")
	}
	if r.DefaultTimerSec != nil && *r.DefaultTimerSec < 0 {
		return errors.New("default_timer_sec cannot be negative")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /packs/{packID}/rounds
func (h *Handler) createRound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.store.GetPack(ctx, r.PathValue("packID"))
	if h.handleStoreError(w, err, "pack") {
		return
	}

	var req CreateRoundRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	round, err := p.AddRound(req.Title)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveRound(ctx, round); err != nil {
		h.logger.Error("failed to save round", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save round")
		return
	}

	respondJSON(w, http.StatusCreated, roundResponse(*round))
}

// GET /rounds/{roundID}
func (h *Handler) getRound(w http.ResponseWriter, r *http.Request) {
	round, err := h.store.GetRound(r.Context(), r.PathValue("roundID"))
	if h.handleStoreError(w, err, "round") {
		return
	}
	respondJSON(w, http.StatusOK, roundResponse(*round))
}

// PATCH /rounds/{roundID}
func (h *Handler) updateRound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	round, err := h.store.GetRound(ctx, r.PathValue("roundID"))
	if h.handleStoreError(w, err, "round") {
		return
	}

	var req UpdateRoundRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if req.Title != nil {
		round.Title = *req.Title
	}
	if req.Order != nil {
		round.Order = *req.Order
	}
	if req.DefaultTimerSec != nil {
		round.DefaultTimerSec = *req.DefaultTimerSec
	}
	if req.RecapEnabled != nil {
		round.RecapEnabled = *req.RecapEnabled
	}
	if req.IntroMediaPath != nil {
		round.IntroMediaPath = *req.IntroMediaPath
	}

	if h.handleStoreError(w, h.store.UpdateRound(ctx, round), "round") {
		return
	}
	respondJSON(w, http.StatusOK, roundResponse(*round))
}

// DELETE /rounds/{roundID}
func (h *Handler) deleteRound(w http.ResponseWriter, r *http.Request) {
	if h.handleStoreError(w, h.store.DeleteRound(r.Context(), r.PathValue("roundID")), "round") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Suggestions ─────────────────────────────────────────────────────────────

type SuggestRequest struct {
	Topic string `json:"topic,omitempty"` // defaults to the round title
	Type  string `json:"type,omitempty"`  // defaults to text
	Count int    `json:"count,omitempty"`
}

type SuggestResponse struct {
	Drafts []service.Draft `json:"drafts"`
}

// POST /rounds/{roundID}/suggest
func (h *Handler) suggestQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	round, err := h.store.GetRound(ctx, r.PathValue("roundID"))
	if h.handleStoreError(w, err, "round") {
		return
	}

	var req SuggestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	topic := req.Topic
	if topic == "" {
		topic = round.Title
	}
	qType := pack.QuestionType(req.Type)
	if req.Type != "" && !qType.Valid() {
		respondError(w, http.StatusBadRequest, "invalid question type")
		return
	}

	drafts, err := h.suggest.SuggestQuestions(ctx, topic, qType, req.Count)
	if errors.Is(err, service.ErrDisabled) {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("suggestion failed", "error", err, "round_id", round.ID)
		respondError(w, http.StatusBadGateway, "failed to generate suggestions")
		return
	}

	respondJSON(w, http.StatusOK, SuggestResponse{Drafts: drafts})
}
