package tournamentservice

import "errors"

var (
	// ErrInvalidKey is returned for a key outside [a-z0-9-], or longer than 64.
	ErrInvalidKey = errors.New("tournament key must be lowercase letters, digits and dashes")
	// ErrNameRequired is returned when a tournament has no display name.
	ErrNameRequired = errors.New("tournament name is required")
	// ErrInvalidPar is returned when par is outside 68-76.
	ErrInvalidPar = errors.New("par must be between 68 and 76")
	// ErrInvalidRosterFile wraps any failure to read an uploaded roster.
	ErrInvalidRosterFile = errors.New("invalid roster file")
)
