package player

import (
	"log/slog"
	"sync"

	"github.com/quizdeck/backend/internal/domain/pack"
	"github.com/quizdeck/backend/internal/domain/presenter"
	"github.com/quizdeck/backend/internal/id"
)

// Manager tracks live presenter sessions by id. One session per
// presenting tab; decks are rebuilt from scratch for every session so an
// edited pack never mutates a running deck.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *slog.Logger
}

func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Create builds a fresh deck from the pack and starts a session at the
// position the locator resolves to (index 0 when restore is nil or stale).
func (m *Manager) Create(p *pack.Pack, restore *presenter.Locator) *Session {
	rounds, questions := SlidesFromPack(p)
	deck := presenter.BuildDeck(rounds, questions, DeckOptions(p))

	ctx := presenter.Context{
		Items:            deck.Items,
		WriteDurationSec: p.WriteTimerSec,
		QuestionTimerSec: QuestionTimerFunc(deck, p.QuestionTimerSec),
	}

	startIndex := 0
	if restore != nil {
		startIndex = restore.Resolve(deck.Items)
	}

	sess := newSession(id.GenerateID(), p.ID, deck, ctx, startIndex, m.logger)

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	m.logger.Info("presenter session created",
		"session_id", sess.ID, "pack_id", p.ID, "items", len(deck.Items), "start_index", startIndex)
	return sess
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[sessionID]
	return sess, ok
}

// Close stops a session and forgets it. Reports whether it existed.
func (m *Manager) Close(sessionID string) bool {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if ok {
		sess.Close()
	}
	return ok
}

// CloseAll stops every live session; used on server shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}
