package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/majors-pool/app/modules/auth/domain"
)

// Service defines the authentication service interface.
type Service interface {
	// Login exchanges the shared admin password for a short-lived signed token.
	Login(ctx context.Context, password string) (*LoginResponse, error)

	// ValidateToken validates a JWT token and returns the claims if valid.
	ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

// LoginResponse carries the issued admin token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
