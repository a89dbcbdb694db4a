package authservice

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	authdomain "github.com/Black-And-White-Club/majors-pool/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/majors-pool/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// AdminSubject is the subject stamped on every admin token.
const AdminSubject = "pool-admin"

// DefaultTokenTTL applies when Config.TokenTTL is zero.
const DefaultTokenTTL = 12 * time.Hour

// Config holds the configuration for the auth service.
type Config struct {
	AdminPassword string
	TokenTTL      time.Duration
}

// service implements the Service interface.
type service struct {
	jwtProvider authjwt.Provider
	config      Config
	logger      *slog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewService creates a new auth service.
func NewService(
	jwtProvider authjwt.Provider,
	config Config,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	return &service{
		jwtProvider: jwtProvider,
		config:      config,
		logger:      logger,
		tracer:      tracer,
		now:         time.Now,
	}
}

// Login exchanges the shared admin password for a signed token.
func (s *service) Login(ctx context.Context, password string) (*LoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if s.config.AdminPassword == "" {
		s.logger.WarnContext(ctx, "Admin login attempted but no password is configured")
		return nil, ErrAuthDisabled
	}

	if !passwordsMatch(password, s.config.AdminPassword) {
		s.logger.WarnContext(ctx, "Admin login rejected")
		return nil, ErrInvalidCredentials
	}

	ttl := s.config.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	claims := &authdomain.Claims{
		Subject: AdminSubject,
		Role:    authdomain.RoleAdmin,
	}

	token, err := s.jwtProvider.GenerateToken(claims, ttl)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token", attr.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerateToken, err)
	}

	s.logger.InfoContext(ctx, "Admin token issued", attr.Duration("ttl", ttl))

	return &LoginResponse{
		Token:     token,
		ExpiresAt: s.now().Add(ttl).UTC(),
	}, nil
}

// ValidateToken validates a JWT token and returns the claims if they grant admin access.
func (s *service) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.ValidateToken")
	defer span.End()

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.jwtProvider.ValidateToken(tokenString)
	if err != nil {
		s.logger.WarnContext(ctx, "Token validation failed",
			attr.Error(err),
		)
		return nil, err
	}

	if !claims.IsAdmin() {
		s.logger.WarnContext(ctx, "Token lacks admin role",
			attr.String("role", claims.Role.String()),
		)
		return nil, ErrForbidden
	}

	s.logger.DebugContext(ctx, "Token validated successfully",
		attr.String("subject", claims.Subject),
	)

	return claims, nil
}

// passwordsMatch compares digests so the comparison time does not depend on
// the candidate length.
func passwordsMatch(candidate, expected string) bool {
	a := sha256.Sum256([]byte(candidate))
	b := sha256.Sum256([]byte(expected))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
