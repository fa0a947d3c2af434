// Package presenter contains the pure presentation core: the deck builder
// that expands a pack into a flat slide script, and the reducer that drives
// navigation and countdown timers through it. Nothing in this package does
// I/O or reads the clock; timestamps come in on events.
package presenter

import "github.com/quizdeck/backend/internal/domain/pack"

// ItemKind discriminates the presentation item union.
type ItemKind string

const (
	KindRoundIntro     ItemKind = "round_intro"
	KindAskRead        ItemKind = "ask_read"
	KindAskMedia       ItemKind = "ask_media"
	KindAskTimer       ItemKind = "ask_timer"
	KindRecapIntro     ItemKind = "recap_intro"
	KindRecapQuestion  ItemKind = "recap_question"
	KindWriteAnswers   ItemKind = "write_answers"
	KindRevealIntro    ItemKind = "reveal_intro"
	KindRevealQuestion ItemKind = "reveal_question"
	KindRevealAnswer   ItemKind = "reveal_answer"
)

// Item is one step of the presenter script. QuestionID is empty for
// round-level kinds; DurationSec is set only on write_answers items.
type Item struct {
	Kind        ItemKind `json:"kind"`
	RoundID     string   `json:"round_id"`
	QuestionID  string   `json:"question_id,omitempty"`
	DurationSec int      `json:"duration_sec,omitempty"`
}

// TimerBearing reports whether the item carries a countdown.
func (i Item) TimerBearing() bool {
	return i.Kind == KindAskTimer || i.Kind == KindWriteAnswers
}

// RoundIntroSlide is the denormalized read view of a round, as consumed by
// the rendering layer. URLs are resolved by the caller before building.
type RoundIntroSlide struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Order           int    `json:"order"`
	DefaultTimerSec int    `json:"default_timer_sec"`
	IntroMediaURL   string `json:"intro_media_url,omitempty"`
}

// QuestionSlide is the denormalized read view of a question.
type QuestionSlide struct {
	ID             string            `json:"id"`
	RoundID        string            `json:"round_id"`
	Order          int               `json:"order"`
	Type           pack.QuestionType `json:"type"`
	Text           string            `json:"text"`
	Answer         string            `json:"answer"`
	Options        []string          `json:"options,omitempty"`
	TimerSec       int               `json:"timer_sec,omitempty"`
	MediaURL       string            `json:"media_url,omitempty"`
	AnswerMediaURL string            `json:"answer_media_url,omitempty"`
}

// HasPrimaryMedia reports whether the slide gets a dedicated ask_media
// step: only audio/video questions with an attached clip qualify.
func (q QuestionSlide) HasPrimaryMedia() bool {
	return (q.Type == pack.TypeAudio || q.Type == pack.TypeVideo) && q.MediaURL != ""
}
