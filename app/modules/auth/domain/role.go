package authdomain

// Role represents a caller's role for authorization purposes.
type Role string

const (
	// RoleAdmin may edit tournaments, rosters and scores.
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	return r == RoleAdmin
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}
