package presenter_test

import (
	"reflect"
	"testing"

	"github.com/quizdeck/backend/internal/domain/pack"
	"github.com/quizdeck/backend/internal/domain/presenter"
)

func round(id string, order int) presenter.RoundIntroSlide {
	return presenter.RoundIntroSlide{ID: id, Title: "Round " + id, Order: order, DefaultTimerSec: 30}
}

func question(id, roundID string, order int) presenter.QuestionSlide {
	return presenter.QuestionSlide{ID: id, RoundID: roundID, Order: order, Type: pack.TypeText, Text: "Q " + id}
}

func kinds(items []presenter.Item) []presenter.ItemKind {
	out := make([]presenter.ItemKind, len(items))
	for i, it := range items {
		out[i] = it.Kind
	}
	return out
}

func TestBuildDeck_OrderingInvariant(t *testing.T) {
	rounds := []presenter.RoundIntroSlide{round("r1", 1)}
	questions := []presenter.QuestionSlide{
		question("q1", "r1", 1),
		question("q2", "r1", 2),
	}

	d := presenter.BuildDeck(rounds, questions, presenter.Options{WriteDurationSec: 120})

	want := []presenter.ItemKind{
		presenter.KindRoundIntro,
		presenter.KindAskRead, presenter.KindAskTimer,
		presenter.KindAskRead, presenter.KindAskTimer,
		presenter.KindRecapIntro,
		presenter.KindRecapQuestion, presenter.KindRecapQuestion,
		presenter.KindWriteAnswers,
		presenter.KindRevealIntro,
		presenter.KindRevealQuestion, presenter.KindRevealAnswer,
		presenter.KindRevealQuestion, presenter.KindRevealAnswer,
	}
	if got := kinds(d.Items); !reflect.DeepEqual(got, want) {
		t.Errorf("item kinds mismatch\n got %v\nwant %v", got, want)
	}
}

func TestBuildDeck_Deterministic(t *testing.T) {
	rounds := []presenter.RoundIntroSlide{round("r2", 2), round("r1", 1)}
	questions := []presenter.QuestionSlide{
		question("q3", "r2", 1),
		question("q1", "r1", 1),
		question("q2", "r1", 2),
	}
	opts := presenter.Options{WriteDurationSec: 90}

	a := presenter.BuildDeck(rounds, questions, opts)
	b := presenter.BuildDeck(rounds, questions, opts)

	if !reflect.DeepEqual(a.Items, b.Items) {
		t.Error("expected identical item lists from identical input")
	}
}

func TestBuildDeck_RoundsSortedByOrder(t *testing.T) {
	rounds := []presenter.RoundIntroSlide{round("r2", 2), round("r1", 1)}
	d := presenter.BuildDeck(rounds, nil, presenter.Options{WriteDurationSec: 60})

	if d.Items[0].RoundID != "r1" {
		t.Errorf("expected round r1 first, got %s", d.Items[0].RoundID)
	}
	// Each empty round contributes round_intro, write_answers, reveal_intro.
	if len(d.Items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(d.Items))
	}
	if d.Items[3].RoundID != "r2" {
		t.Errorf("expected round r2 second, got %s", d.Items[3].RoundID)
	}
}

func TestBuildDeck_RecapSuppressedForSingleQuestion(t *testing.T) {
	rounds := []presenter.RoundIntroSlide{round("r1", 1)}
	questions := []presenter.QuestionSlide{question("q1", "r1", 1)}

	d := presenter.BuildDeck(rounds, questions, presenter.Options{WriteDurationSec: 60})

	for _, it := range d.Items {
		if it.Kind == presenter.KindRecapIntro || it.Kind == presenter.KindRecapQuestion {
			t.Fatalf("unexpected recap item %v in single-question round", it)
		}
	}
}

func TestBuildDeck_RecapDisabledByFlag(t *testing.T) {
	rounds := []presenter.RoundIntroSlide{round("r1", 1)}
	questions := []presenter.QuestionSlide{
		question("q1", "r1", 1),
		question("q2", "r1", 2),
	}
	opts := presenter.Options{
		WriteDurationSec: 60,
		RecapEnabled:     map[string]bool{"r1": false},
	}

	d := presenter.BuildDeck(rounds, questions, opts)

	for _, it := range d.Items {
		if it.Kind == presenter.KindRecapIntro || it.Kind == presenter.KindRecapQuestion {
			t.Fatalf("unexpected recap item %v with recap disabled", it)
		}
	}
}

func TestBuildDeck_RecapDefaultsToEnabledWhenRoundAbsentFromMap(t *testing.T) {
	rounds := []presenter.RoundIntroSlide{round("r1", 1)}
	questions := []presenter.QuestionSlide{
		question("q1", "r1", 1),
		question("q2", "r1", 2),
	}
	opts := presenter.Options{
		WriteDurationSec: 60,
		RecapEnabled:     map[string]bool{"other": false},
	}

	d := presenter.BuildDeck(rounds, questions, opts)

	found := false
	for _, it := range d.Items {
		if it.Kind == presenter.KindRecapIntro {
			found = true
		}
	}
	if !found {
		t.Error("expected recap_intro for round absent from the recap map")
	}
}

func TestBuildDeck_AskMediaGating(t *testing.T) {
	rounds := []presenter.RoundIntroSlide{round("r1", 1)}
	withClip := question("q1", "r1", 1)
	withClip.Type = pack.TypeAudio
	withClip.MediaURL = "/media/clip.mp3"
	noClip := question("q2", "r1", 2)
	noClip.Type = pack.TypeAudio // audio type but nothing attached
	imageQ := question("q3", "r1", 3)
	imageQ.Type = pack.TypeImage
	imageQ.MediaURL = "/media/photo.png" // media attached but not audio/video

	d := presenter.BuildDeck(rounds, []presenter.QuestionSlide{withClip, noClip, imageQ}, presenter.Options{WriteDurationSec: 60})

	var mediaFor []string
	for _, it := range d.Items {
		if it.Kind == presenter.KindAskMedia {
			mediaFor = append(mediaFor, it.QuestionID)
		}
	}
	if !reflect.DeepEqual(mediaFor, []string{"q1"}) {
		t.Errorf("expected ask_media only for q1, got %v", mediaFor)
	}
}

func TestBuildDeck_WriteAnswersDuration(t *testing.T) {
	rounds := []presenter.RoundIntroSlide{round("r1", 1), round("r2", 2)}
	d := presenter.BuildDeck(rounds, nil, presenter.Options{WriteDurationSec: 240})

	count := 0
	for _, it := range d.Items {
		if it.Kind == presenter.KindWriteAnswers {
			count++
			if it.DurationSec != 240 {
				t.Errorf("expected duration 240, got %d", it.DurationSec)
			}
		}
	}
	if count != 2 {
		t.Errorf("expected one write_answers per round, got %d", count)
	}
}

func TestBuildDeck_EmptyInput(t *testing.T) {
	d := presenter.BuildDeck(nil, nil, presenter.Options{WriteDurationSec: 60})

	if len(d.Items) != 0 {
		t.Errorf("expected empty deck, got %d items", len(d.Items))
	}
	if d.RoundsByID == nil || d.QuestionsByID == nil || d.QuestionsByRound == nil {
		t.Error("expected non-nil indexes on empty input")
	}
}

func TestBuildDeck_QuestionsSortedWithinRound(t *testing.T) {
	rounds := []presenter.RoundIntroSlide{round("r1", 1)}
	questions := []presenter.QuestionSlide{
		question("q2", "r1", 2),
		question("q1", "r1", 1),
	}

	d := presenter.BuildDeck(rounds, questions, presenter.Options{WriteDurationSec: 60})

	grouped := d.QuestionsByRound["r1"]
	if grouped[0].ID != "q1" || grouped[1].ID != "q2" {
		t.Errorf("expected questions sorted by order, got %s, %s", grouped[0].ID, grouped[1].ID)
	}
	if d.Items[1].QuestionID != "q1" {
		t.Errorf("expected first ask_read for q1, got %s", d.Items[1].QuestionID)
	}
}

func TestBuildDeck_Indexes(t *testing.T) {
	rounds := []presenter.RoundIntroSlide{round("r1", 1)}
	questions := []presenter.QuestionSlide{question("q1", "r1", 1)}

	d := presenter.BuildDeck(rounds, questions, presenter.Options{WriteDurationSec: 60})

	if _, ok := d.RoundsByID["r1"]; !ok {
		t.Error("expected r1 in RoundsByID")
	}
	if _, ok := d.QuestionsByID["q1"]; !ok {
		t.Error("expected q1 in QuestionsByID")
	}
	if len(d.QuestionsByRound["r1"]) != 1 {
		t.Error("expected q1 grouped under r1")
	}
}
