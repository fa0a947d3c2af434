package presenter

import "sort"

// Options controls deck expansion. A round missing from RecapEnabled (or a
// nil map) is treated as recap-enabled.
type Options struct {
	WriteDurationSec int
	RecapEnabled     map[string]bool
}

func (o Options) recapEnabled(roundID string) bool {
	if o.RecapEnabled == nil {
		return true
	}
	v, ok := o.RecapEnabled[roundID]
	if !ok {
		return true
	}
	return v
}

// Deck is the flat presenter script plus lookup indexes. Items and the
// indexes are immutable after construction; if the pack changes, build a
// new deck.
type Deck struct {
	Items            []Item
	RoundsByID       map[string]RoundIntroSlide
	QuestionsByID    map[string]QuestionSlide
	QuestionsByRound map[string][]QuestionSlide
}

// BuildDeck expands rounds and questions into the presenter script.
//
// Per round, in ascending round order: round_intro, then per question
// (ascending question order) ask_read [+ ask_media for audio/video with a
// clip] + ask_timer, then recap_intro + recap_question per question (only
// when recap is enabled and the round has at least two questions), then one
// write_answers, then reveal_intro, then reveal_question + reveal_answer
// per question. Pure and total: empty input yields an empty deck.
func BuildDeck(rounds []RoundIntroSlide, questions []QuestionSlide, opts Options) *Deck {
	d := &Deck{
		Items:            []Item{},
		RoundsByID:       make(map[string]RoundIntroSlide, len(rounds)),
		QuestionsByID:    make(map[string]QuestionSlide, len(questions)),
		QuestionsByRound: make(map[string][]QuestionSlide),
	}

	for _, q := range questions {
		d.QuestionsByID[q.ID] = q
		d.QuestionsByRound[q.RoundID] = append(d.QuestionsByRound[q.RoundID], q)
	}
	for roundID := range d.QuestionsByRound {
		qs := d.QuestionsByRound[roundID]
		// Stable: equal orders keep their incoming relative order.
		sort.SliceStable(qs, func(i, j int) bool { return qs[i].Order < qs[j].Order })
	}

	ordered := make([]RoundIntroSlide, len(rounds))
	copy(ordered, rounds)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	for _, r := range ordered {
		d.RoundsByID[r.ID] = r
		qs := d.QuestionsByRound[r.ID]

		d.Items = append(d.Items, Item{Kind: KindRoundIntro, RoundID: r.ID})

		for _, q := range qs {
			d.Items = append(d.Items, Item{Kind: KindAskRead, RoundID: r.ID, QuestionID: q.ID})
			if q.HasPrimaryMedia() {
				d.Items = append(d.Items, Item{Kind: KindAskMedia, RoundID: r.ID, QuestionID: q.ID})
			}
			d.Items = append(d.Items, Item{Kind: KindAskTimer, RoundID: r.ID, QuestionID: q.ID})
		}

		if opts.recapEnabled(r.ID) && len(qs) >= 2 {
			d.Items = append(d.Items, Item{Kind: KindRecapIntro, RoundID: r.ID})
			for _, q := range qs {
				d.Items = append(d.Items, Item{Kind: KindRecapQuestion, RoundID: r.ID, QuestionID: q.ID})
			}
		}

		d.Items = append(d.Items, Item{Kind: KindWriteAnswers, RoundID: r.ID, DurationSec: opts.WriteDurationSec})

		d.Items = append(d.Items, Item{Kind: KindRevealIntro, RoundID: r.ID})
		for _, q := range qs {
			d.Items = append(d.Items, Item{Kind: KindRevealQuestion, RoundID: r.ID, QuestionID: q.ID})
			d.Items = append(d.Items, Item{Kind: KindRevealAnswer, RoundID: r.ID, QuestionID: q.ID})
		}
	}

	return d
}
