// internal/api/router.go
package api

import "net/http"

// RegisterRoutes wires every handler onto the mux using the method-prefixed
// patterns of the 1.22 ServeMux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Packs
	mux.HandleFunc("POST /packs", h.createPack)
	mux.HandleFunc("GET /packs", h.listPacks)
	mux.HandleFunc("GET /packs/{packID}", h.getPack)
	mux.HandleFunc("PATCH /packs/{packID}", h.updatePack)
	mux.HandleFunc("DELETE /packs/{packID}", h.deletePack)
	mux.HandleFunc("GET /packs/{packID}/stats", h.getPackStats)
	mux.HandleFunc("GET /packs/{packID}/export", h.exportPack)
	mux.HandleFunc("POST /import", h.importPack)

	// Rounds
	mux.HandleFunc("POST /packs/{packID}/rounds", h.createRound)
	mux.HandleFunc("GET /rounds/{roundID}", h.getRound)
	mux.HandleFunc("PATCH /rounds/{roundID}", h.updateRound)
	mux.HandleFunc("DELETE /rounds/{roundID}", h.deleteRound)
	mux.HandleFunc("POST /rounds/{roundID}/suggest", h.suggestQuestions)

	// Questions
	mux.HandleFunc("POST /rounds/{roundID}/questions", h.addQuestion)
	mux.HandleFunc("PATCH /questions/{questionID}", h.updateQuestion)
	mux.HandleFunc("DELETE /questions/{questionID}", h.deleteQuestion)

	// Teams
	mux.HandleFunc("POST /packs/{packID}/teams", h.createTeam)
	mux.HandleFunc("GET /packs/{packID}/teams", h.listTeams)
	mux.HandleFunc("DELETE /teams/{teamID}", h.deleteTeam)

	// Media
	mux.HandleFunc("POST /media", h.uploadMedia)
	mux.HandleFunc("GET /media/{name}", h.serveMedia)

	// Presenter
	mux.HandleFunc("POST /packs/{packID}/presenter", h.createPresenterSession)
	mux.HandleFunc("GET /presenter/{sessionID}", h.getPresenterState)
	mux.HandleFunc("POST /presenter/{sessionID}/events", h.postPresenterEvent)
	mux.HandleFunc("GET /presenter/{sessionID}/ws", h.presenterSocket)
	mux.HandleFunc("DELETE /presenter/{sessionID}", h.closePresenterSession)
}
