package player

import (
	"github.com/quizdeck/backend/internal/domain/pack"
	"github.com/quizdeck/backend/internal/domain/presenter"
	"github.com/quizdeck/backend/internal/media"
)

// SlidesFromPack flattens a stored pack into the denormalized read views
// the deck builder consumes, resolving media paths to public URLs.
func SlidesFromPack(p *pack.Pack) ([]presenter.RoundIntroSlide, []presenter.QuestionSlide) {
	rounds := make([]presenter.RoundIntroSlide, 0, len(p.Rounds))
	var questions []presenter.QuestionSlide

	for _, r := range p.Rounds {
		rounds = append(rounds, presenter.RoundIntroSlide{
			ID:              r.ID,
			Title:           r.Title,
			Order:           r.Order,
			DefaultTimerSec: r.DefaultTimerSec,
			IntroMediaURL:   media.URL(r.IntroMediaPath),
		})
		for _, q := range r.Questions {
			questions = append(questions, presenter.QuestionSlide{
				ID:             q.ID,
				RoundID:        q.RoundID,
				Order:          q.Order,
				Type:           q.Type,
				Text:           q.Text,
				Answer:         q.Answer,
				Options:        q.Options,
				TimerSec:       q.TimerSec,
				MediaURL:       media.URL(q.MediaPath),
				AnswerMediaURL: media.URL(q.AnswerMediaPath),
			})
		}
	}
	return rounds, questions
}

// DeckOptions derives deck expansion options from pack settings.
func DeckOptions(p *pack.Pack) presenter.Options {
	recap := make(map[string]bool, len(p.Rounds))
	for _, r := range p.Rounds {
		recap[r.ID] = r.RecapEnabled
	}
	return presenter.Options{
		WriteDurationSec: p.WriteTimerSec,
		RecapEnabled:     recap,
	}
}

// QuestionTimerFunc returns the timer policy injected into the reducer:
// per-question override, then the pack-level preset, then the round
// default. Unknown question ids resolve to 0, which suppresses the timer.
func QuestionTimerFunc(deck *presenter.Deck, packDefaultSec int) func(string) int {
	return func(questionID string) int {
		q, ok := deck.QuestionsByID[questionID]
		if !ok {
			return 0
		}
		if q.TimerSec > 0 {
			return q.TimerSec
		}
		if packDefaultSec > 0 {
			return packDefaultSec
		}
		if r, ok := deck.RoundsByID[q.RoundID]; ok {
			return r.DefaultTimerSec
		}
		return 0
	}
}
