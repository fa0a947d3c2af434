package presenter_test

import (
	"testing"

	"github.com/quizdeck/backend/internal/domain/presenter"
)

func scriptItems() []presenter.Item {
	return []presenter.Item{
		{Kind: presenter.KindRoundIntro, RoundID: "r1"},
		{Kind: presenter.KindAskRead, RoundID: "r1", QuestionID: "q1"},
		{Kind: presenter.KindAskTimer, RoundID: "r1", QuestionID: "q1"},
		{Kind: presenter.KindRoundIntro, RoundID: "r2"},
		{Kind: presenter.KindAskRead, RoundID: "r2", QuestionID: "q2"},
	}
}

func TestLocator_RoundTrip(t *testing.T) {
	items := scriptItems()
	loc := presenter.LocatorFor(items[2])

	decoded, ok := presenter.DecodeLocator(loc.Encode())
	if !ok {
		t.Fatal("expected round-trip decode to succeed")
	}
	if decoded != loc {
		t.Errorf("round-trip mismatch: %+v vs %+v", decoded, loc)
	}
	if got := decoded.Resolve(items); got != 2 {
		t.Errorf("expected index 2, got %d", got)
	}
}

func TestLocator_ExactMatchWins(t *testing.T) {
	items := scriptItems()
	loc := presenter.Locator{RoundID: "r2", QuestionID: "q2", Kind: presenter.KindAskRead}

	if got := loc.Resolve(items); got != 4 {
		t.Errorf("expected index 4, got %d", got)
	}
}

func TestLocator_FallsBackToFirstItemOfRound(t *testing.T) {
	items := scriptItems()
	// The exact item was edited away; land on the round intro instead.
	loc := presenter.Locator{RoundID: "r2", QuestionID: "deleted", Kind: presenter.KindAskTimer}

	if got := loc.Resolve(items); got != 3 {
		t.Errorf("expected index 3 (first item of r2), got %d", got)
	}
}

func TestLocator_FallsBackToZeroForUnknownRound(t *testing.T) {
	loc := presenter.Locator{RoundID: "gone", Kind: presenter.KindRoundIntro}

	if got := loc.Resolve(scriptItems()); got != 0 {
		t.Errorf("expected index 0, got %d", got)
	}
	if got := loc.Resolve(nil); got != 0 {
		t.Errorf("expected index 0 on empty deck, got %d", got)
	}
}

func TestDecodeLocator_Garbage(t *testing.T) {
	for _, raw := range []string{"", "not json", "{}", `{"question_id":"q1"}`} {
		if _, ok := presenter.DecodeLocator(raw); ok {
			t.Errorf("expected decode of %q to fail", raw)
		}
	}
}
