package authservice

import "errors"

var (
	// ErrInvalidCredentials is returned when the admin password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAuthDisabled is returned when no admin password is configured.
	ErrAuthDisabled = errors.New("admin login is not configured")

	// ErrMissingToken is returned when no token is provided.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrForbidden is returned when a valid token lacks the admin role.
	ErrForbidden = errors.New("admin role required")

	// ErrGenerateToken is returned when token generation fails.
	ErrGenerateToken = errors.New("failed to generate token")
)
