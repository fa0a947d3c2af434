// Package player is the impure shell around the presenter core: it owns
// one goroutine per live session that serializes events, drives the tick
// clock while a timer runs, and pushes state snapshots to the presenting
// tab over websocket.
package player

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quizdeck/backend/internal/domain/presenter"
)

// tickInterval is a display-refresh concern only: remaining time is
// recomputed from the absolute start instant, so cadence never changes
// when a timer finishes.
const tickInterval = 250 * time.Millisecond

var ErrClosed = errors.New("presenter session closed")

// MusicCue values for the presenting tab's background loop.
const (
	MusicNone  = ""
	MusicRound = "round"
	MusicBreak = "break"
)

// Snapshot is what the rendering layer sees after every transition.
type Snapshot struct {
	SessionID        string                     `json:"session_id"`
	PackID           string                     `json:"pack_id"`
	Index            int                        `json:"index"`
	Total            int                        `json:"total"`
	Item             presenter.Item             `json:"item"`
	Round            *presenter.RoundIntroSlide `json:"round,omitempty"`
	Question         *presenter.QuestionSlide   `json:"question,omitempty"`
	TimerStatus      presenter.TimerStatus      `json:"timer_status"`
	TimerDurationMs  int64                      `json:"timer_duration_ms"`
	TimerRemainingMs int64                      `json:"timer_remaining_ms"`
	MusicCue         string                     `json:"music_cue,omitempty"`
	ClipURL          string                     `json:"clip_url,omitempty"`
	Locator          presenter.Locator          `json:"locator"`
}

// command carries one event into the session goroutine. A nil event is a
// read-only snapshot request.
type command struct {
	ev    presenter.Event
	reply chan Snapshot
}

// Session owns the presenter state for one tab. All reads and writes go
// through the run goroutine, so the pure reducer is never called
// concurrently.
type Session struct {
	ID     string
	PackID string

	deck   *presenter.Deck
	ctx    presenter.Context
	logger *slog.Logger

	commands  chan command
	done      chan struct{}
	closeOnce sync.Once

	mu   sync.Mutex
	subs map[*websocket.Conn]struct{}
}

func newSession(sessionID, packID string, deck *presenter.Deck, ctx presenter.Context, startIndex int, logger *slog.Logger) *Session {
	s := &Session{
		ID:       sessionID,
		PackID:   packID,
		deck:     deck,
		ctx:      ctx,
		logger:   logger,
		commands: make(chan command),
		done:     make(chan struct{}),
		subs:     make(map[*websocket.Conn]struct{}),
	}

	initial := presenter.Reduce(presenter.State{}, presenter.SetIndex{Index: startIndex}, ctx)
	go s.run(initial)
	return s
}

// Apply sends one event through the session mailbox and returns the
// resulting snapshot.
func (s *Session) Apply(ev presenter.Event) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case s.commands <- command{ev: ev, reply: reply}:
	case <-s.done:
		return Snapshot{}, ErrClosed
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-s.done:
		return Snapshot{}, ErrClosed
	}
}

// Current returns the state without applying an event.
func (s *Session) Current() (Snapshot, error) {
	return s.Apply(nil)
}

// Close stops the session goroutine and disconnects all subscribers.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		for conn := range s.subs {
			conn.Close()
		}
		s.subs = map[*websocket.Conn]struct{}{}
		s.mu.Unlock()
	})
}

// Subscribe registers the presenting tab's websocket and immediately sends
// it the current snapshot.
func (s *Session) Subscribe(conn *websocket.Conn) error {
	snap, err := s.Current()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.subs[conn] = struct{}{}
	s.mu.Unlock()
	return conn.WriteJSON(snap)
}

func (s *Session) Unsubscribe(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.subs, conn)
	s.mu.Unlock()
}

// run is the single owner of the presenter state. The ticker exists only
// while the timer is running; it is stopped the moment the state leaves
// running (finish, skip, navigation, close) so no tick ever fires against
// a stale item.
func (s *Session) run(state presenter.State) {
	var ticker *time.Ticker
	var tickC <-chan time.Time

	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
	}
	defer stopTicker()

	syncTicker := func() {
		if state.TimerStatus == presenter.TimerRunning {
			if ticker == nil {
				ticker = time.NewTicker(tickInterval)
				tickC = ticker.C
			}
			return
		}
		stopTicker()
	}

	for {
		select {
		case <-s.done:
			return
		case <-tickC:
			state = presenter.Reduce(state, presenter.Tick{NowMs: time.Now().UnixMilli()}, s.ctx)
			syncTicker()
			s.broadcast(s.snapshot(state))
		case cmd := <-s.commands:
			if cmd.ev != nil {
				state = presenter.Reduce(state, cmd.ev, s.ctx)
				syncTicker()
			}
			snap := s.snapshot(state)
			cmd.reply <- snap
			if cmd.ev != nil {
				s.broadcast(snap)
			}
		}
	}
}

func (s *Session) broadcast(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.subs {
		if err := conn.WriteJSON(snap); err != nil {
			s.logger.Warn("dropping presenter subscriber", "session_id", s.ID, "error", err)
			conn.Close()
			delete(s.subs, conn)
		}
	}
}

func (s *Session) snapshot(state presenter.State) Snapshot {
	snap := Snapshot{
		SessionID:        s.ID,
		PackID:           s.PackID,
		Index:            state.Index,
		Total:            len(s.deck.Items),
		TimerStatus:      state.TimerStatus,
		TimerDurationMs:  state.TimerDurationMs,
		TimerRemainingMs: state.TimerRemainingMs,
	}
	if len(s.deck.Items) == 0 {
		return snap
	}

	it := s.deck.Items[state.Index]
	snap.Item = it
	snap.Locator = presenter.LocatorFor(it)
	snap.MusicCue = musicCue(it, state.TimerStatus)
	snap.ClipURL = s.clipURL(it)

	if r, ok := s.deck.RoundsByID[it.RoundID]; ok {
		snap.Round = &r
	}
	if it.QuestionID != "" {
		if q, ok := s.deck.QuestionsByID[it.QuestionID]; ok {
			snap.Question = &q
		}
	}
	return snap
}

// musicCue selects the background loop: round music behind a running
// question timer, break music behind a running write-answers countdown.
func musicCue(it presenter.Item, status presenter.TimerStatus) string {
	if status != presenter.TimerRunning {
		return MusicNone
	}
	switch it.Kind {
	case presenter.KindAskTimer:
		return MusicRound
	case presenter.KindWriteAnswers:
		return MusicBreak
	}
	return MusicNone
}

// clipURL picks the one-shot clip to play on entry: the primary clip on an
// ask_media slide, the answer clip (or the primary clip again) on reveal.
func (s *Session) clipURL(it presenter.Item) string {
	if it.QuestionID == "" {
		return ""
	}
	q, ok := s.deck.QuestionsByID[it.QuestionID]
	if !ok {
		return ""
	}
	switch it.Kind {
	case presenter.KindAskMedia:
		return q.MediaURL
	case presenter.KindRevealAnswer:
		if q.AnswerMediaURL != "" {
			return q.AnswerMediaURL
		}
		if q.HasPrimaryMedia() {
			return q.MediaURL
		}
	}
	return ""
}
