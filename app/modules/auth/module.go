package auth

import (
	"context"
	"net/http"
	"sync"

	authservice "github.com/Black-And-White-Club/majors-pool/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/majors-pool/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/majors-pool/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/majors-pool/config"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// Login attempts allowed per client IP.
const (
	loginRate  = rate.Limit(0.2)
	loginBurst = 5
)

// Module represents the auth module.
type Module struct {
	observability observability.Observability
	service       authservice.Service
	handlers      authhandlers.Handlers
}

// NewModule creates a new auth module and registers the login route.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing auth module")

	jwtProvider := authjwt.NewProvider(cfg.Auth.JWTSecret)

	service := authservice.NewService(
		jwtProvider,
		authservice.Config{
			AdminPassword: cfg.Auth.AdminPassword,
			TokenTTL:      cfg.Auth.TokenTTL,
		},
		logger,
		tracer,
	)

	handlers := authhandlers.NewAuthHandlers(service, logger, tracer)

	if httpRouter != nil {
		limiter := authhandlers.NewIPRateLimiter(loginRate, loginBurst)
		httpRouter.With(authhandlers.RateLimitMiddleware(limiter)).
			Post("/api/auth/login", handlers.HandleHTTPLogin)
	}

	if cfg.Auth.AdminPassword == "" {
		logger.WarnContext(ctx, "No admin password configured; admin routes will reject every request")
	}

	return &Module{
		observability: obs,
		service:       service,
		handlers:      handlers,
	}, nil
}

// RequireAdmin returns the middleware that guards admin routes.
func (m *Module) RequireAdmin() func(http.Handler) http.Handler {
	return authhandlers.RequireAdmin(m.service)
}

// Run is a no-op; the auth module only serves HTTP.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	<-ctx.Done()
}

// Close stops the auth module.
func (m *Module) Close() error {
	m.observability.Logger.Info("Auth module stopped")
	return nil
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}
