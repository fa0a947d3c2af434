package api

import (
	"errors"
	"net/http"

	"github.com/quizdeck/backend/internal/domain/pack"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreatePackRequest struct {
	Title            string `json:"title" example:"Friday Night Quiz"`
	WriteTimerSec    int    `json:"write_timer_sec,omitempty" example:"180"`
	QuestionTimerSec int    `json:"question_timer_sec,omitempty" example:"30"`
}

func (r *CreatePackRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	if r.WriteTimerSec < 0 || r.QuestionTimerSec < 0 {
		return errors.New("timer settings cannot be negative")
	}
	return nil
}

type PackResponse struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	WriteTimerSec    int    `json:"write_timer_sec"`
	QuestionTimerSec int    `json:"question_timer_sec"`
}

type QuestionResponse struct {
	ID              string   `json:"id"`
	RoundID         string   `json:"round_id"`
	Order           int      `json:"order"`
	Type            string   `json:"type"`
	Text            string   `json:"text"`
	Answer          string   `json:"answer,omitempty"`
	Options         []string `json:"options,omitempty"`
	TimerSec        int      `json:"timer_sec,omitempty"`
	MediaPath       string   `json:"media_path,omitempty"`
	AnswerMediaPath string   `json:"answer_media_path,omitempty"`
}

type RoundResponse struct {
	ID              string             `json:"id"`
	PackID          string             `json:"pack_id"`
	Title           string             `json:"title"`
	Order           int                `json:"order"`
	DefaultTimerSec int                `json:"default_timer_sec"`
	RecapEnabled    bool               `json:"recap_enabled"`
	IntroMediaPath  string             `json:"intro_media_path,omitempty"`
	Questions       []QuestionResponse `json:"questions"`
}

type GetPackResponse struct {
	PackResponse
	Rounds []RoundResponse `json:"rounds"`
}

func questionResponse(q pack.Question) QuestionResponse {
	return QuestionResponse{
		ID:              q.ID,
		RoundID:         q.RoundID,
		Order:           q.Order,
		Type:            string(q.Type),
		Text:            q.Text,
		Answer:          q.Answer,
		Options:         q.Options,
		TimerSec:        q.TimerSec,
		MediaPath:       q.MediaPath,
		AnswerMediaPath: q.AnswerMediaPath,
	}
}

func roundResponse(r pack.Round) RoundResponse {
	questions := make([]QuestionResponse, 0, len(r.Questions))
	for _, q := range r.Questions {
		questions = append(questions, questionResponse(q))
	}
	return RoundResponse{
		ID:              r.ID,
		PackID:          r.PackID,
		Title:           r.Title,
		Order:           r.Order,
		DefaultTimerSec: r.DefaultTimerSec,
		RecapEnabled:    r.RecapEnabled,
		IntroMediaPath:  r.IntroMediaPath,
		Questions:       questions,
	}
}

func packResponse(p *pack.Pack) PackResponse {
	return PackResponse{
		ID:               p.ID,
		Title:            p.Title,
		WriteTimerSec:    p.WriteTimerSec,
		QuestionTimerSec: p.QuestionTimerSec,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /packs
func (h *Handler) createPack(w http.ResponseWriter, r *http.Request) {
	var req CreatePackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p := pack.New(req.Title)
	if req.WriteTimerSec > 0 {
		p.WriteTimerSec = req.WriteTimerSec
	}
	p.QuestionTimerSec = req.QuestionTimerSec

	if err := h.store.SavePack(r.Context(), p); err != nil {
		h.logger.Error("failed to save pack", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save pack")
		return
	}

	respondJSON(w, http.StatusCreated, packResponse(p))
}

// GET /packs
func (h *Handler) listPacks(w http.ResponseWriter, r *http.Request) {
	packs, err := h.store.ListPacks(r.Context())
	if err != nil {
		h.logger.Error("failed to list packs", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load packs")
		return
	}

	out := make([]PackResponse, 0, len(packs))
	for _, p := range packs {
		out = append(out, packResponse(p))
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /packs/{packID}
func (h *Handler) getPack(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetPack(r.Context(), r.PathValue("packID"))
	if h.handleStoreError(w, err, "pack") {
		return
	}

	resp := GetPackResponse{
		PackResponse: packResponse(p),
		Rounds:       make([]RoundResponse, 0, len(p.Rounds)),
	}
	for _, rd := range p.Rounds {
		resp.Rounds = append(resp.Rounds, roundResponse(rd))
	}
	respondJSON(w, http.StatusOK, resp)
}

type UpdatePackRequest struct {
	Title            *string `json:"title,omitempty"`
	WriteTimerSec    *int    `json:"write_timer_sec,omitempty"`
	QuestionTimerSec *int    `json:"question_timer_sec,omitempty"`
}

func (r *UpdatePackRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return errors.New("title cannot be empty")
	}
	if r.WriteTimerSec != nil && *r.WriteTimerSec <= 0 {
		return errors.New("write_timer_sec must be positive")
	}
	if r.QuestionTimerSec != nil && *r.QuestionTimerSec < 0 {
		return errors.New("question_timer_sec cannot be negative")
	}
	return nil
}

// PATCH /packs/{packID}
func (h *Handler) updatePack(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetPack(r.Context(), r.PathValue("packID"))
	if h.handleStoreError(w, err, "pack") {
		return
	}

	var req UpdatePackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.WriteTimerSec != nil {
		p.WriteTimerSec = *req.WriteTimerSec
	}
	if req.QuestionTimerSec != nil {
		p.QuestionTimerSec = *req.QuestionTimerSec
	}

	if h.handleStoreError(w, h.store.UpdatePackSettings(r.Context(), p), "pack") {
		return
	}
	respondJSON(w, http.StatusOK, packResponse(p))
}

// DELETE /packs/{packID}
func (h *Handler) deletePack(w http.ResponseWriter, r *http.Request) {
	if h.handleStoreError(w, h.store.DeletePack(r.Context(), r.PathValue("packID")), "pack") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /packs/{packID}/stats
func (h *Handler) getPackStats(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetPack(r.Context(), r.PathValue("packID"))
	if h.handleStoreError(w, err, "pack") {
		return
	}
	respondJSON(w, http.StatusOK, p.Stats())
}
