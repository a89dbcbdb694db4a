package authdomain

import (
	"time"
)

// Claims represents the domain model for authentication claims.
type Claims struct {
	TokenID   string
	Subject   string
	Role      Role
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// IsAdmin reports whether the claims grant admin access.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin && !c.IsExpired()
}
