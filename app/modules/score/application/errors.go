package scoreservice

import "errors"

// Domain errors for the score service. Handlers treat these as client
// errors rather than retrying.
var (
	// ErrInvalidScore indicates a stroke or hole value is outside valid bounds.
	ErrInvalidScore = errors.New("invalid score value")

	// ErrGolferNotOnRoster indicates a manual score names a golfer the
	// tournament does not have.
	ErrGolferNotOnRoster = errors.New("golfer is not on the tournament roster")

	// ErrFetchInProgress indicates a live refresh for the tournament is
	// already running.
	ErrFetchInProgress = errors.New("a live score fetch is already in progress")

	// ErrNoLiveID indicates the tournament has no live feed identifier.
	ErrNoLiveID = errors.New("tournament has no live feed id")

	// ErrEmptyRoster indicates live scores cannot be matched before a roster is uploaded.
	ErrEmptyRoster = errors.New("tournament roster is empty")
)
