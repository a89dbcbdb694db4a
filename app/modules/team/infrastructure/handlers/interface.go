package teamhandlers

import "net/http"

// Handlers serves the team HTTP surface.
type Handlers interface {
	HandleListTeams(w http.ResponseWriter, r *http.Request)
	HandleSubmitTeam(w http.ResponseWriter, r *http.Request)
	HandleDeleteTeam(w http.ResponseWriter, r *http.Request)
}
