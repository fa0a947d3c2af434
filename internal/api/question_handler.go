package api

import (
	"errors"
	"net/http"

	"github.com/quizdeck/backend/internal/domain/pack"
)

// ── Request / Response types ────────────────────────────────────────────────

type AddQuestionRequest struct {
	Type            string   `json:"type" example:"text"`
	Text            string   `json:"text"`
	Answer          string   `json:"answer"`
	Options         []string `json:"options,omitempty"`
	TimerSec        int      `json:"timer_sec,omitempty"`
	MediaPath       string   `json:"media_path,omitempty"`
	AnswerMediaPath string   `json:"answer_media_path,omitempty"`
}

func (r *AddQuestionRequest) Validate() error {
	if r.Text == "" {
		return errors.New("text is required")
	}
	qType := pack.QuestionType(r.Type)
	if r.Type != "" && !qType.Valid() {
		return errors.New("invalid question type")
	}
	if qType == pack.TypeMultipleChoice && len(r.Options) < 2 {
		return errors.New("multiple_choice questions need at least 2 options")
	}
	if r.TimerSec < 0 {
		return errors.New("timer_sec cannot be negative")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /rounds/{roundID}/questions
func (h *Handler) addQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	round, err := h.store.GetRound(ctx, r.PathValue("roundID"))
	if h.handleStoreError(w, err, "round") {
		return
	}

	var req AddQuestionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	q, err := round.AddQuestion(pack.QuestionType(req.Type), req.Text, req.Answer)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	q.Options = req.Options
	q.TimerSec = req.TimerSec
	q.MediaPath = req.MediaPath
	q.AnswerMediaPath = req.AnswerMediaPath

	if err := h.store.SaveQuestion(ctx, q); err != nil {
		h.logger.Error("failed to save question", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save question")
		return
	}

	respondJSON(w, http.StatusCreated, questionResponse(*q))
}

type UpdateQuestionRequest struct {
	Type            *string   `json:"type,omitempty"`
	Text            *string   `json:"text,omitempty"`
	Answer          *string   `json:"answer,omitempty"`
	Options         *[]string `json:"options,omitempty"`
	Order           *int      `json:"order,omitempty"`
	TimerSec        *int      `json:"timer_sec,omitempty"`
	MediaPath       *string   `json:"media_path,omitempty"`
	AnswerMediaPath *string   `json:"answer_media_path,omitempty"`
}

func (r *UpdateQuestionRequest) Validate() error {
	if r.Text != nil && *r.Text == "" {
		return errors.New("text cannot be empty")
	}
	if r.Type != nil && !pack.QuestionType(*r.Type).Valid() {
		return errors.New("invalid question type")
	}
	if r.Order != nil && *r.Order < 1 {
		return errors.New("order must be at least 1")
	}
	if r.TimerSec != nil && *r.TimerSec < 0 {
		return errors.New("timer_sec cannot be negative")
	}
	return nil
}

// PATCH /questions/{questionID}
func (h *Handler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := h.store.GetQuestion(ctx, r.PathValue("questionID"))
	if h.handleStoreError(w, err, "question") {
		return
	}

	var req UpdateQuestionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if req.Type != nil {
		q.Type = pack.QuestionType(*req.Type)
	}
	if req.Text != nil {
		q.Text = *req.Text
	}
	if req.Answer != nil {
		q.Answer = *req.Answer
	}
	if req.Options != nil {
		q.Options = *req.Options
	}
	if req.Order != nil {
		q.Order = *req.Order
	}
	if req.TimerSec != nil {
		q.TimerSec = *req.TimerSec
	}
	if req.MediaPath != nil {
		q.MediaPath = *req.MediaPath
	}
	if req.AnswerMediaPath != nil {
		q.AnswerMediaPath = *req.AnswerMediaPath
	}

	if h.handleStoreError(w, h.store.UpdateQuestion(ctx, q), "question") {
		return
	}
	respondJSON(w, http.StatusOK, questionResponse(*q))
}

// DELETE /questions/{questionID}
func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	if h.handleStoreError(w, h.store.DeleteQuestion(r.Context(), r.PathValue("questionID")), "question") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
