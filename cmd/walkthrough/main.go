// Command walkthrough builds a small sample pack and drives a full
// presentation through the reducer with synthetic timestamps, printing
// the resulting script. Useful for eyeballing deck ordering and timer
// behavior without a browser.
package main

import (
	"fmt"
	"log"

	"github.com/quizdeck/backend/internal/domain/pack"
	"github.com/quizdeck/backend/internal/domain/presenter"
	"github.com/quizdeck/backend/internal/player"
)

func main() {
	p := samplePack()

	rounds, questions := player.SlidesFromPack(p)
	deck := presenter.BuildDeck(rounds, questions, player.DeckOptions(p))
	ctx := presenter.Context{
		Items:            deck.Items,
		WriteDurationSec: p.WriteTimerSec,
		QuestionTimerSec: player.QuestionTimerFunc(deck, p.QuestionTimerSec),
	}

	fmt.Printf("Pack %q compiles to %d slides:\n\n", p.Title, len(deck.Items))
	for i, it := range deck.Items {
		fmt.Printf("  %2d. %-15s %s\n", i, it.Kind, describe(deck, it))
	}

	fmt.Println("\nWalking through with Next every 5 simulated seconds:")

	var nowMs int64
	state := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 0}, ctx)
	for step := 0; step < 2*len(deck.Items)+4; step++ {
		nowMs += 5000
		state = presenter.Reduce(state, presenter.Next{NowMs: nowMs}, ctx)
		state = presenter.Reduce(state, presenter.Tick{NowMs: nowMs}, ctx)

		it := deck.Items[state.Index]
		fmt.Printf("  t=%3ds  slide %2d %-15s timer=%s\n",
			nowMs/1000, state.Index, it.Kind, timerLabel(state))

		if state.Index == len(deck.Items)-1 && state.TimerStatus != presenter.TimerRunning {
			break
		}
	}
}

func timerLabel(s presenter.State) string {
	switch s.TimerStatus {
	case presenter.TimerRunning:
		return fmt.Sprintf("running %ds left", s.TimerRemainingMs/1000)
	case presenter.TimerFinished:
		return "finished"
	default:
		return fmt.Sprintf("%s (%ds)", s.TimerStatus, s.TimerDurationMs/1000)
	}
}

func describe(deck *presenter.Deck, it presenter.Item) string {
	if q, ok := deck.QuestionsByID[it.QuestionID]; ok {
		return q.Text
	}
	if r, ok := deck.RoundsByID[it.RoundID]; ok {
		return r.Title
	}
	return ""
}

func samplePack() *pack.Pack {
	p := pack.New("Friday Night Quiz")
	p.WriteTimerSec = 60

	general, err := p.AddRound("General Knowledge")
	if err != nil {
		log.Fatal(err)
	}
	general.DefaultTimerSec = 20
	mustAdd(general, pack.TypeText, "Which planet has the most moons?", "Saturn")
	mustAdd(general, pack.TypeText, "What year did the Berlin Wall fall?", "1989")

	music, err := p.AddRound("Music Round")
	if err != nil {
		log.Fatal(err)
	}
	q := mustAdd(music, pack.TypeAudio, "Name the artist of this clip", "Queen")
	q.TimerSec = 45
	q.MediaPath = "clip-queen.mp3"
	mustAdd(music, pack.TypeText, "How many strings does a standard violin have?", "Four")

	return p
}

func mustAdd(r *pack.Round, t pack.QuestionType, text, answer string) *pack.Question {
	q, err := r.AddQuestion(t, text, answer)
	if err != nil {
		log.Fatal(err)
	}
	return q
}
