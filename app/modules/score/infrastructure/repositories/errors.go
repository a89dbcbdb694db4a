package scoredb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNotFound indicates the requested score row does not exist.
	ErrNotFound = errors.New("score not found")
)
