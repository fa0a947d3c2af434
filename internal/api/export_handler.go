package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/quizdeck/backend/internal/domain/pack"
)

// ── Request / Response types ────────────────────────────────────────────────

type ExportQuestion struct {
	Type            string   `json:"type"`
	Text            string   `json:"text"`
	Answer          string   `json:"answer"`
	Options         []string `json:"options,omitempty"`
	TimerSec        int      `json:"timer_sec,omitempty"`
	MediaPath       string   `json:"media_path,omitempty"`
	AnswerMediaPath string   `json:"answer_media_path,omitempty"`
}

type ExportRound struct {
	Title           string           `json:"title"`
	DefaultTimerSec int              `json:"default_timer_sec"`
	RecapEnabled    bool             `json:"recap_enabled"`
	IntroMediaPath  string           `json:"intro_media_path,omitempty"`
	Questions       []ExportQuestion `json:"questions"`
}

type ExportData struct {
	Version          string        `json:"version"`
	ExportedAt       string        `json:"exported_at"`
	Title            string        `json:"title"`
	WriteTimerSec    int           `json:"write_timer_sec"`
	QuestionTimerSec int           `json:"question_timer_sec,omitempty"`
	Rounds           []ExportRound `json:"rounds"`
}

type ImportResult struct {
	PackID           string `json:"pack_id"`
	RoundsCreated    int    `json:"rounds_created"`
	QuestionsCreated int    `json:"questions_created"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /packs/{packID}/export
func (h *Handler) exportPack(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetPack(r.Context(), r.PathValue("packID"))
	if h.handleStoreError(w, err, "pack") {
		return
	}

	exportData := ExportData{
		Version:          "1.0",
		ExportedAt:       time.Now().UTC().Format(time.RFC3339),
		Title:            p.Title,
		WriteTimerSec:    p.WriteTimerSec,
		QuestionTimerSec: p.QuestionTimerSec,
		Rounds:           make([]ExportRound, 0, len(p.Rounds)),
	}

	for _, round := range p.Rounds {
		exportRound := ExportRound{
			Title:           round.Title,
			DefaultTimerSec: round.DefaultTimerSec,
			RecapEnabled:    round.RecapEnabled,
			IntroMediaPath:  round.IntroMediaPath,
			Questions:       make([]ExportQuestion, len(round.Questions)),
		}

		for i, q := range round.Questions {
			exportRound.Questions[i] = ExportQuestion{
				Type:            string(q.Type),
				Text:            q.Text,
				Answer:          q.Answer,
				Options:         q.Options,
				TimerSec:        q.TimerSec,
				MediaPath:       q.MediaPath,
				AnswerMediaPath: q.AnswerMediaPath,
			}
		}

		exportData.Rounds = append(exportData.Rounds, exportRound)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=quizdeck-export.json")
	json.NewEncoder(w).Encode(exportData)
}

// POST /import
//
// Imports always create a fresh pack; existing packs are never merged into.
func (h *Handler) importPack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var importData ExportData
	if !decodeAndValidate(w, r, &importData) {
		return
	}
	if importData.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	p := pack.New(importData.Title)
	if importData.WriteTimerSec > 0 {
		p.WriteTimerSec = importData.WriteTimerSec
	}
	if importData.QuestionTimerSec > 0 {
		p.QuestionTimerSec = importData.QuestionTimerSec
	}
	if err := h.store.SavePack(ctx, p); err != nil {
		h.logger.Error("failed to create pack", "title", importData.Title, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to import pack")
		return
	}

	result := ImportResult{PackID: p.ID}

	for _, round := range importData.Rounds {
		newRound, err := p.AddRound(round.Title)
		if err != nil {
			h.logger.Error("failed to add round", "title", round.Title, "error", err)
			continue
		}
		if round.DefaultTimerSec > 0 {
			newRound.DefaultTimerSec = round.DefaultTimerSec
		}
		newRound.RecapEnabled = round.RecapEnabled
		newRound.IntroMediaPath = round.IntroMediaPath

		if err := h.store.SaveRound(ctx, newRound); err != nil {
			h.logger.Error("failed to save round", "title", round.Title, "error", err)
			continue
		}
		result.RoundsCreated++

		for _, q := range round.Questions {
			newQuestion, err := newRound.AddQuestion(pack.QuestionType(q.Type), q.Text, q.Answer)
			if err != nil {
				h.logger.Error("failed to add question", "error", err)
				continue
			}
			newQuestion.Options = q.Options
			newQuestion.TimerSec = q.TimerSec
			newQuestion.MediaPath = q.MediaPath
			newQuestion.AnswerMediaPath = q.AnswerMediaPath

			if err := h.store.SaveQuestion(ctx, newQuestion); err != nil {
				h.logger.Error("failed to save question", "error", err)
				continue
			}
			result.QuestionsCreated++
		}
	}

	respondJSON(w, http.StatusCreated, result)
}
