package teamservice

import "errors"

var (
	// ErrPicksLocked is returned for submissions after the picks deadline.
	ErrPicksLocked = errors.New("picks are locked for this tournament")
	// ErrTeamNameRequired is returned when a team has no name.
	ErrTeamNameRequired = errors.New("team name is required")
	// ErrInvalidTeamID is returned when a team id is not a UUID.
	ErrInvalidTeamID = errors.New("invalid team id")
)
