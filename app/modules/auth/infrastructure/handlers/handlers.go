package authhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	authservice "github.com/Black-And-White-Club/majors-pool/app/modules/auth/application"
	"github.com/Black-And-White-Club/majors-pool/pkg/httpx"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// AuthHandlers implements the Handlers interface.
type AuthHandlers struct {
	service authservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(
	service authservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &AuthHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// HandleHTTPLogin exchanges the admin password for a bearer token.
func (h *AuthHandlers) HandleHTTPLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleHTTPLogin")
	defer span.End()

	var req LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Login(ctx, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrInvalidCredentials), errors.Is(err, authservice.ErrAuthDisabled):
			httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			h.logger.ErrorContext(ctx, "Login failed", attr.Error(err))
			httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
