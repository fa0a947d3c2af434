package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quizdeck/backend/internal/domain/presenter"
	"github.com/quizdeck/backend/internal/player"
)

const presenterCookieName = "quizdeck-presenter"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The API is already open to the authoring frontend via CORS.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// readLocator restores the saved position for a pack from the session
// cookie. A missing or unreadable locator means "start from the top".
func (h *Handler) readLocator(r *http.Request, packID string) *presenter.Locator {
	session, _ := h.cookies.Get(r, presenterCookieName)
	raw, ok := session.Values["loc:"+packID].(string)
	if !ok {
		return nil
	}
	loc, ok := presenter.DecodeLocator(raw)
	if !ok {
		return nil
	}
	return &loc
}

// saveLocator persists the current position so a reloaded tab resumes
// where it left off.
func (h *Handler) saveLocator(w http.ResponseWriter, r *http.Request, packID string, loc presenter.Locator) {
	session, _ := h.cookies.Get(r, presenterCookieName)
	session.Values["loc:"+packID] = loc.Encode()
	if err := session.Save(r, w); err != nil {
		h.logger.Warn("failed to save presenter location", "error", err, "pack_id", packID)
	}
}

// POST /packs/{packID}/presenter
func (h *Handler) createPresenterSession(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetPack(r.Context(), r.PathValue("packID"))
	if h.handleStoreError(w, err, "pack") {
		return
	}

	sess := h.players.Create(p, h.readLocator(r, p.ID))

	snap, err := sess.Current()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to start presenter session")
		return
	}
	respondJSON(w, http.StatusCreated, snap)
}

// GET /presenter/{sessionID}
func (h *Handler) getPresenterState(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.players.Get(r.PathValue("sessionID"))
	if !ok {
		respondError(w, http.StatusNotFound, "presenter session not found")
		return
	}

	snap, err := sess.Current()
	if errors.Is(err, player.ErrClosed) {
		respondError(w, http.StatusGone, "presenter session closed")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

type PresenterEventRequest struct {
	Type  string `json:"type" example:"next"`
	Index *int   `json:"index,omitempty"` // set_index only
}

func (r *PresenterEventRequest) Validate() error {
	switch r.Type {
	case "next", "prev", "reset_timer":
		return nil
	case "set_index":
		if r.Index == nil {
			return errors.New("index is required for set_index")
		}
		return nil
	}
	return errors.New("unknown event type")
}

// POST /presenter/{sessionID}/events
//
// Navigation comes in over HTTP; ticks are generated inside the player.
// Both sides stamp events from the same wall clock.
func (h *Handler) postPresenterEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.players.Get(r.PathValue("sessionID"))
	if !ok {
		respondError(w, http.StatusNotFound, "presenter session not found")
		return
	}

	var req PresenterEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var ev presenter.Event
	switch req.Type {
	case "next":
		ev = presenter.Next{NowMs: time.Now().UnixMilli()}
	case "prev":
		ev = presenter.Prev{}
	case "set_index":
		ev = presenter.SetIndex{Index: *req.Index}
	case "reset_timer":
		ev = presenter.ResetTimer{}
	}

	snap, err := sess.Apply(ev)
	if errors.Is(err, player.ErrClosed) {
		respondError(w, http.StatusGone, "presenter session closed")
		return
	}

	if snap.Total > 0 {
		h.saveLocator(w, r, sess.PackID, snap.Locator)
	}
	respondJSON(w, http.StatusOK, snap)
}

// GET /presenter/{sessionID}/ws
//
// The presenting tab holds this socket open to receive a snapshot after
// every transition, including timer ticks.
func (h *Handler) presenterSocket(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.players.Get(r.PathValue("sessionID"))
	if !ok {
		respondError(w, http.StatusNotFound, "presenter session not found")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	if err := sess.Subscribe(conn); err != nil {
		conn.Close()
		return
	}
	defer func() {
		sess.Unsubscribe(conn)
		conn.Close()
	}()

	// Drain the read side until the tab goes away; the push direction is
	// handled by the session broadcast.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// DELETE /presenter/{sessionID}
func (h *Handler) closePresenterSession(w http.ResponseWriter, r *http.Request) {
	if !h.players.Close(r.PathValue("sessionID")) {
		respondError(w, http.StatusNotFound, "presenter session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
