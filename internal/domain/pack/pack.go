package pack

import (
	"errors"

	"github.com/quizdeck/backend/internal/id"
)

type QuestionType string

const (
	TypeText           QuestionType = "text"
	TypeImage          QuestionType = "image"
	TypeAudio          QuestionType = "audio"
	TypeVideo          QuestionType = "video"
	TypeMultipleChoice QuestionType = "multiple_choice"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeText, TypeImage, TypeAudio, TypeVideo, TypeMultipleChoice:
		return true
	}
	return false
}

// Pack is the authoring aggregate: an ordered set of rounds, each with
// ordered questions, plus the presentation settings that apply pack-wide.
type Pack struct {
	ID               string
	Title            string
	WriteTimerSec    int // duration of each write-answers break
	QuestionTimerSec int // pack-level default question timer; 0 = fall back to the round default
	Rounds           []Round
}

type Round struct {
	ID              string
	PackID          string
	Title           string
	Order           int
	DefaultTimerSec int  // timer for questions with no override when the pack has no preset
	RecapEnabled    bool // emit the recap block before the write-answers break
	IntroMediaPath  string
	Questions       []Question
}

type Question struct {
	ID              string
	RoundID         string
	Order           int
	Type            QuestionType
	Text            string
	Answer          string
	Options         []string // multiple-choice only
	TimerSec        int      // per-question override; 0 = none
	MediaPath       string
	AnswerMediaPath string
}

// HasPrimaryMedia reports whether the question carries a playable clip:
// only audio/video questions with an attached asset qualify.
func (q Question) HasPrimaryMedia() bool {
	return (q.Type == TypeAudio || q.Type == TypeVideo) && q.MediaPath != ""
}

func New(title string) *Pack {
	return &Pack{
		ID:            id.GenerateID(),
		Title:         title,
		WriteTimerSec: 180,
		Rounds:        []Round{},
	}
}

// AddRound appends a round at the end of the pack and returns it.
func (p *Pack) AddRound(title string) (*Round, error) {
	if title == "" {
		return nil, errors.New("round title cannot be empty")
	}
	p.Rounds = append(p.Rounds, Round{
		ID:              id.GenerateID(),
		PackID:          p.ID,
		Title:           title,
		Order:           len(p.Rounds) + 1,
		DefaultTimerSec: 30,
		RecapEnabled:    true,
		Questions:       []Question{},
	})
	return &p.Rounds[len(p.Rounds)-1], nil
}

// AddQuestion appends a question at the end of the round and returns it.
func (r *Round) AddQuestion(qType QuestionType, text, answer string) (*Question, error) {
	if text == "" {
		return nil, errors.New("question text cannot be empty")
	}
	if qType == "" {
		qType = TypeText
	}
	if !qType.Valid() {
		return nil, errors.New("invalid question type: " + string(qType))
	}
	r.Questions = append(r.Questions, Question{
		ID:      id.GenerateID(),
		RoundID: r.ID,
		Order:   len(r.Questions) + 1,
		Type:    qType,
		Text:    text,
		Answer:  answer,
	})
	return &r.Questions[len(r.Questions)-1], nil
}
