package presenter_test

import (
	"testing"

	"github.com/quizdeck/backend/internal/domain/presenter"
)

// timerDeck returns a context over a single-round deck whose ask_timer
// resolves to timerSec for every question.
func timerContext(items []presenter.Item, writeSec, timerSec int) presenter.Context {
	return presenter.Context{
		Items:            items,
		WriteDurationSec: writeSec,
		QuestionTimerSec: func(string) int { return timerSec },
	}
}

func askTimerItems() []presenter.Item {
	return []presenter.Item{
		{Kind: presenter.KindAskRead, RoundID: "r1", QuestionID: "q1"},
		{Kind: presenter.KindAskTimer, RoundID: "r1", QuestionID: "q1"},
		{Kind: presenter.KindWriteAnswers, RoundID: "r1", DurationSec: 120},
	}
}

func TestReduce_SetIndexClampsOutOfRange(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 30)

	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 99}, ctx)
	if s.Index != 2 {
		t.Errorf("expected clamp to 2, got %d", s.Index)
	}

	s = presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: -5}, ctx)
	if s.Index != 0 {
		t.Errorf("expected clamp to 0, got %d", s.Index)
	}
}

func TestReduce_SetIndexOnEmptyDeck(t *testing.T) {
	ctx := timerContext(nil, 120, 30)

	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 3}, ctx)
	if s.Index != 0 || s.TimerStatus != presenter.TimerIdle || s.TimerDurationMs != 0 {
		t.Errorf("expected zeroed idle state on empty deck, got %+v", s)
	}
}

func TestReduce_NonTimerItemAdvancesOnNext(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 30)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 0}, ctx)

	s = presenter.Reduce(s, presenter.Next{NowMs: 500}, ctx)
	if s.Index != 1 {
		t.Errorf("expected advance to 1, got %d", s.Index)
	}
	if s.TimerStatus != presenter.TimerIdle {
		t.Errorf("expected idle after landing, got %s", s.TimerStatus)
	}
	// Landing on ask_timer pre-arms duration and remaining.
	if s.TimerDurationMs != 30000 || s.TimerRemainingMs != 30000 {
		t.Errorf("expected 30000ms armed, got %d/%d", s.TimerDurationMs, s.TimerRemainingMs)
	}
}

func TestReduce_NextStartsIdleTimerInPlace(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 30)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 1}, ctx)

	s = presenter.Reduce(s, presenter.Next{NowMs: 1000}, ctx)

	if s.Index != 1 {
		t.Errorf("expected index unchanged, got %d", s.Index)
	}
	if s.TimerStatus != presenter.TimerRunning {
		t.Errorf("expected running, got %s", s.TimerStatus)
	}
	if s.TimerDurationMs != 30000 || s.TimerRemainingMs != 30000 {
		t.Errorf("expected 30000ms, got %d/%d", s.TimerDurationMs, s.TimerRemainingMs)
	}
	if s.TimerStartedAtMs == nil || *s.TimerStartedAtMs != 1000 {
		t.Errorf("expected started at 1000, got %v", s.TimerStartedAtMs)
	}
}

func TestReduce_NextSkipsRunningTimer(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 30)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 1}, ctx)
	s = presenter.Reduce(s, presenter.Next{NowMs: 1000}, ctx)

	s = presenter.Reduce(s, presenter.Next{NowMs: 1200}, ctx)

	if s.Index != 2 {
		t.Errorf("expected skip to 2, got %d", s.Index)
	}
	if s.TimerStatus != presenter.TimerIdle {
		t.Errorf("expected idle after skip, got %s", s.TimerStatus)
	}
	if s.TimerStartedAtMs != nil {
		t.Error("expected cleared start timestamp after skip")
	}
}

func TestReduce_NextAfterFinishedAdvances(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 30)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 1}, ctx)
	s = presenter.Reduce(s, presenter.Next{NowMs: 1000}, ctx)
	s = presenter.Reduce(s, presenter.Tick{NowMs: 31000}, ctx)

	if s.TimerStatus != presenter.TimerFinished {
		t.Fatalf("expected finished, got %s", s.TimerStatus)
	}

	s = presenter.Reduce(s, presenter.Next{NowMs: 32000}, ctx)
	if s.Index != 2 {
		t.Errorf("expected advance to 2, got %d", s.Index)
	}
}

func TestReduce_ZeroDurationTimerNeverStarts(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 0)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 1}, ctx)

	got := presenter.Reduce(s, presenter.Next{NowMs: 1000}, ctx)

	if got != s {
		t.Errorf("expected state unchanged, got %+v", got)
	}
	if got.TimerStatus != presenter.TimerIdle {
		t.Errorf("expected idle, got %s", got.TimerStatus)
	}
}

func TestReduce_TickUpdatesRemaining(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 30)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 1}, ctx)
	s = presenter.Reduce(s, presenter.Next{NowMs: 0}, ctx)

	s = presenter.Reduce(s, presenter.Tick{NowMs: 10000}, ctx)

	if s.TimerStatus != presenter.TimerRunning {
		t.Errorf("expected still running, got %s", s.TimerStatus)
	}
	if s.TimerRemainingMs != 20000 {
		t.Errorf("expected 20000ms remaining, got %d", s.TimerRemainingMs)
	}
	if s.TimerStartedAtMs == nil || *s.TimerStartedAtMs != 0 {
		t.Errorf("expected start timestamp preserved, got %v", s.TimerStartedAtMs)
	}
}

func TestReduce_TickFinishesAndFreezes(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 30)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 1}, ctx)
	s = presenter.Reduce(s, presenter.Next{NowMs: 1000}, ctx)

	s = presenter.Reduce(s, presenter.Tick{NowMs: 31000}, ctx)

	if s.TimerStatus != presenter.TimerFinished {
		t.Errorf("expected finished, got %s", s.TimerStatus)
	}
	if s.TimerRemainingMs != 0 {
		t.Errorf("expected 0 remaining, got %d", s.TimerRemainingMs)
	}
	if s.TimerStartedAtMs != nil {
		t.Error("expected cleared start timestamp so stray ticks cannot resurrect the clock")
	}

	// A stray late tick is a no-op against the frozen state.
	after := presenter.Reduce(s, presenter.Tick{NowMs: 99999}, ctx)
	if after != s {
		t.Errorf("expected stray tick to be a no-op, got %+v", after)
	}
}

func TestReduce_TickIsDriftFree(t *testing.T) {
	// 10s timer started at t=0: sparse ticks must land on the same result
	// as dense ones because remaining is recomputed from the start instant.
	items := []presenter.Item{{Kind: presenter.KindAskTimer, RoundID: "r1", QuestionID: "q1"}}
	ctx := timerContext(items, 120, 10)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 0}, ctx)
	s = presenter.Reduce(s, presenter.Next{NowMs: 0}, ctx)

	s = presenter.Reduce(s, presenter.Tick{NowMs: 2000}, ctx)
	if s.TimerRemainingMs != 8000 {
		t.Errorf("expected 8000ms remaining, got %d", s.TimerRemainingMs)
	}

	s = presenter.Reduce(s, presenter.Tick{NowMs: 10000}, ctx)
	if s.TimerStatus != presenter.TimerFinished || s.TimerRemainingMs != 0 {
		t.Errorf("expected finished with 0 remaining, got %s/%d", s.TimerStatus, s.TimerRemainingMs)
	}
}

func TestReduce_TickClampsNegativeElapsed(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 30)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 1}, ctx)
	s = presenter.Reduce(s, presenter.Next{NowMs: 5000}, ctx)

	// A tick stamped before the start instant must not inflate remaining.
	s = presenter.Reduce(s, presenter.Tick{NowMs: 4000}, ctx)

	if s.TimerRemainingMs != 30000 {
		t.Errorf("expected remaining pinned at 30000, got %d", s.TimerRemainingMs)
	}
	if s.TimerStatus != presenter.TimerRunning {
		t.Errorf("expected still running, got %s", s.TimerStatus)
	}
}

func TestReduce_TickIgnoredWhenNotRunning(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 30)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 1}, ctx)

	got := presenter.Reduce(s, presenter.Tick{NowMs: 10000}, ctx)
	if got != s {
		t.Errorf("expected idle tick to be a no-op, got %+v", got)
	}
}

func TestReduce_PrevClampsAtZeroAndRearmsTimer(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 30)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 1}, ctx)
	s = presenter.Reduce(s, presenter.Next{NowMs: 0}, ctx)
	s = presenter.Reduce(s, presenter.Tick{NowMs: 5000}, ctx)

	s = presenter.Reduce(s, presenter.Prev{}, ctx)
	if s.Index != 0 || s.TimerStatus != presenter.TimerIdle {
		t.Errorf("expected idle at 0, got %+v", s)
	}

	// There is no resume: going back and forward re-arms from zero elapsed.
	s = presenter.Reduce(s, presenter.Next{NowMs: 6000}, ctx)
	if s.Index != 1 || s.TimerRemainingMs != 30000 {
		t.Errorf("expected re-armed 30000ms at index 1, got %+v", s)
	}

	s = presenter.Reduce(s, presenter.Prev{}, ctx)
	s = presenter.Reduce(s, presenter.Prev{}, ctx)
	if s.Index != 0 {
		t.Errorf("expected prev clamped at 0, got %d", s.Index)
	}
}

func TestReduce_ResetTimerRearmsCurrentItem(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 30)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 1}, ctx)
	s = presenter.Reduce(s, presenter.Next{NowMs: 0}, ctx)
	s = presenter.Reduce(s, presenter.Tick{NowMs: 12000}, ctx)

	s = presenter.Reduce(s, presenter.ResetTimer{}, ctx)

	want := presenter.Reduce(s, presenter.ResetTimer{}, ctx)
	if s != want {
		t.Errorf("expected reset to be idempotent: %+v vs %+v", s, want)
	}
	if s.Index != 1 || s.TimerStatus != presenter.TimerIdle || s.TimerRemainingMs != 30000 {
		t.Errorf("expected fresh idle 30000ms at index 1, got %+v", s)
	}
}

func TestReduce_WriteAnswersUsesWriteDuration(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, 30)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 2}, ctx)

	if s.TimerDurationMs != 120000 {
		t.Errorf("expected 120000ms write duration, got %d", s.TimerDurationMs)
	}

	s = presenter.Reduce(s, presenter.Next{NowMs: 1000}, ctx)
	if s.TimerStatus != presenter.TimerRunning || s.TimerRemainingMs != 120000 {
		t.Errorf("expected running 120000ms, got %+v", s)
	}
}

func TestReduce_NegativeTimerSecondsSuppressStart(t *testing.T) {
	ctx := timerContext(askTimerItems(), 120, -15)
	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 1}, ctx)

	if s.TimerDurationMs != 0 {
		t.Errorf("expected negative seconds clamped to 0, got %d", s.TimerDurationMs)
	}
	got := presenter.Reduce(s, presenter.Next{NowMs: 1000}, ctx)
	if got.TimerStatus != presenter.TimerIdle || got.Index != 1 {
		t.Errorf("expected no-op on zero-length timer, got %+v", got)
	}
}

// Single-item deck end to end: start, tick down, finish, and a final Next
// that has nowhere to go but still resets the only item to idle.
func TestReduce_SingleTimerItemScenario(t *testing.T) {
	items := []presenter.Item{{Kind: presenter.KindAskTimer, RoundID: "r1", QuestionID: "q1"}}
	ctx := timerContext(items, 120, 30)

	s := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: 0}, ctx)
	s = presenter.Reduce(s, presenter.Next{NowMs: 0}, ctx)
	if s.TimerStatus != presenter.TimerRunning {
		t.Fatalf("expected running, got %s", s.TimerStatus)
	}

	s = presenter.Reduce(s, presenter.Tick{NowMs: 10000}, ctx)
	if s.TimerRemainingMs != 20000 || s.TimerStatus != presenter.TimerRunning {
		t.Fatalf("expected running with 20000ms, got %+v", s)
	}

	s = presenter.Reduce(s, presenter.Tick{NowMs: 35000}, ctx)
	if s.TimerStatus != presenter.TimerFinished {
		t.Fatalf("expected finished, got %s", s.TimerStatus)
	}

	s = presenter.Reduce(s, presenter.Next{NowMs: 40000}, ctx)
	if s.Index != 0 {
		t.Errorf("expected index clamped to 0, got %d", s.Index)
	}
	if s.TimerStatus != presenter.TimerIdle || s.TimerRemainingMs != 30000 {
		t.Errorf("expected re-armed idle state, got %+v", s)
	}
}
