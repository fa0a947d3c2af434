package presenter

// TimerStatus is the countdown lifecycle of the current item.
type TimerStatus string

const (
	TimerIdle     TimerStatus = "idle"
	TimerRunning  TimerStatus = "running"
	TimerPaused   TimerStatus = "paused" // declared but no transition produces it yet
	TimerFinished TimerStatus = "finished"
)

// State is the presenter runtime state: a position in the item list plus
// the countdown for the current item. TimerStartedAtMs is nil whenever the
// timer is not running. Remaining time is always recomputed from the
// absolute start instant, never decremented, so tick cadence cannot
// accumulate drift.
type State struct {
	Index            int         `json:"index"`
	TimerStatus      TimerStatus `json:"timer_status"`
	TimerDurationMs  int64       `json:"timer_duration_ms"`
	TimerRemainingMs int64       `json:"timer_remaining_ms"`
	TimerStartedAtMs *int64      `json:"timer_started_at_ms,omitempty"`
}

// Event is the closed set of presenter transitions. The reducer handles
// every variant; anything else is a no-op.
type Event interface{ presenterEvent() }

// SetIndex jumps to an arbitrary index, clamped into bounds. Used on
// restore and explicit navigation from a menu.
type SetIndex struct{ Index int }

// Prev moves one item back, clamped at 0.
type Prev struct{}

// Next advances with timer-aware semantics. NowMs must come from the same
// clock as Tick timestamps.
type Next struct{ NowMs int64 }

// Tick samples wall-clock time against a running timer.
type Tick struct{ NowMs int64 }

// ResetTimer re-arms the current item as if freshly navigated to.
type ResetTimer struct{}

func (SetIndex) presenterEvent()   {}
func (Prev) presenterEvent()       {}
func (Next) presenterEvent()       {}
func (Tick) presenterEvent()       {}
func (ResetTimer) presenterEvent() {}

// Context carries the immutable deck and the timer policy into the
// reducer. QuestionTimerSec encapsulates the override precedence
// (question override → pack preset → round default); the reducer only
// asks for "the" seconds for a question id.
type Context struct {
	Items            []Item
	WriteDurationSec int
	QuestionTimerSec func(questionID string) int
}

// Reduce applies one event to the state. Pure, total, synchronous: it
// never errors, out-of-range indices are clamped, and stray ticks are
// no-ops. Callers must serialize events; the reducer is not meant to run
// concurrently against shared state.
func Reduce(s State, ev Event, ctx Context) State {
	switch e := ev.(type) {
	case SetIndex:
		return resetForIndex(e.Index, ctx)
	case Prev:
		return resetForIndex(s.Index-1, ctx)
	case ResetTimer:
		return resetForIndex(s.Index, ctx)
	case Next:
		return reduceNext(s, e, ctx)
	case Tick:
		return reduceTick(s, e)
	}
	return s
}

// reduceNext implements the "press Next to start the clock" affordance.
// Non-timer items always advance. On a timer item, the first press from
// idle starts the countdown in place; a press while running, paused or
// finished advances, abandoning whatever remained.
func reduceNext(s State, e Next, ctx Context) State {
	it, ok := itemAt(ctx, s.Index)
	if !ok || !it.TimerBearing() {
		return resetForIndex(s.Index+1, ctx)
	}

	if s.TimerStatus == TimerIdle {
		d := durationMs(it, ctx)
		if d <= 0 {
			// A zero-length timer would flash straight to finished and
			// make the advance unreachable; refuse to start it.
			return s
		}
		startedAt := e.NowMs
		return State{
			Index:            s.Index,
			TimerStatus:      TimerRunning,
			TimerDurationMs:  d,
			TimerRemainingMs: d,
			TimerStartedAtMs: &startedAt,
		}
	}

	return resetForIndex(s.Index+1, ctx)
}

// reduceTick recomputes remaining time from the original start instant.
// Ticks never restart the timer and never fire transitions other than
// running → finished.
func reduceTick(s State, e Tick) State {
	if s.TimerStatus != TimerRunning || s.TimerStartedAtMs == nil {
		return s
	}
	elapsed := e.NowMs - *s.TimerStartedAtMs
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := s.TimerDurationMs - elapsed
	if remaining <= 0 {
		s.TimerStatus = TimerFinished
		s.TimerRemainingMs = 0
		s.TimerStartedAtMs = nil
		return s
	}
	s.TimerRemainingMs = remaining
	return s
}

// resetForIndex is the canonical landing transition: every navigation
// produces its result here, so timer state is always consistent with
// whatever item is now current.
func resetForIndex(next int, ctx Context) State {
	idx := clampIndex(next, len(ctx.Items))
	var d int64
	if it, ok := itemAt(ctx, idx); ok {
		d = durationMs(it, ctx)
	}
	return State{
		Index:            idx,
		TimerStatus:      TimerIdle,
		TimerDurationMs:  d,
		TimerRemainingMs: d,
	}
}

func durationMs(it Item, ctx Context) int64 {
	switch it.Kind {
	case KindAskTimer:
		sec := 0
		if ctx.QuestionTimerSec != nil {
			sec = ctx.QuestionTimerSec(it.QuestionID)
		}
		if sec < 0 {
			sec = 0
		}
		return int64(sec) * 1000
	case KindWriteAnswers:
		sec := ctx.WriteDurationSec
		if sec < 0 {
			sec = 0
		}
		return int64(sec) * 1000
	}
	return 0
}

func itemAt(ctx Context, idx int) (Item, bool) {
	if idx < 0 || idx >= len(ctx.Items) {
		return Item{}, false
	}
	return ctx.Items[idx], true
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
