package tournamenthandlers

import "net/http"

// Handlers serves the tournament HTTP surface.
type Handlers interface {
	HandleListTournaments(w http.ResponseWriter, r *http.Request)
	HandleGetTournament(w http.ResponseWriter, r *http.Request)
	HandleUpsertTournament(w http.ResponseWriter, r *http.Request)
	HandleSetPicksLock(w http.ResponseWriter, r *http.Request)
	HandleDeleteTournament(w http.ResponseWriter, r *http.Request)
	HandleUploadRoster(w http.ResponseWriter, r *http.Request)
}
