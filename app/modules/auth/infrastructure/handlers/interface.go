package authhandlers

import "net/http"

// Handlers serves the admin login surface.
type Handlers interface {
	HandleHTTPLogin(w http.ResponseWriter, r *http.Request)
}
