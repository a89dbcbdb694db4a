package authhandlers

import (
	"context"
	"time"

	authservice "github.com/Black-And-White-Club/majors-pool/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/majors-pool/app/modules/auth/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	LoginFunc         func(ctx context.Context, password string) (*authservice.LoginResponse, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

func (f *FakeService) Login(ctx context.Context, password string) (*authservice.LoginResponse, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, password)
	}
	return &authservice.LoginResponse{Token: "test-token"}, nil
}

func (f *FakeService) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(ctx, tokenString)
	}
	return &authdomain.Claims{Role: authdomain.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)}, nil
}
