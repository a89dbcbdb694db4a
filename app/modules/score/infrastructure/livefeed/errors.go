package livefeed

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRateLimited maps HTTP 429.
	ErrRateLimited = errors.New("live feed rate limit exceeded")
	// ErrUnauthorized maps HTTP 401 and 403; the API key is missing or wrong.
	ErrUnauthorized = errors.New("live feed rejected the API key")
	// ErrBadRequest maps HTTP 400, usually an unknown tournId/year pair.
	ErrBadRequest = errors.New("live feed rejected the request parameters")
	// ErrNotFound maps HTTP 404.
	ErrNotFound = errors.New("live feed tournament not found")
	// ErrInvalidLiveID is returned for an identifier not shaped "<name>-<year>".
	ErrInvalidLiveID = errors.New(`live id must look like "<tournament>-<year>", e.g. "masters-2027" or "014-2027"`)
	// ErrUnknownTournament is returned when a name cannot be resolved to a tournId.
	ErrUnknownTournament = errors.New("tournament not found in live feed schedule")
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("live feed API key is not configured")
)

// StatusError carries a non-2xx response the client has no sentinel for.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("live feed returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

func errorForStatus(code int, body string) error {
	switch code {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &StatusError{StatusCode: code, Body: body}
	}
}
