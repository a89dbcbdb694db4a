package teamhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	teamservice "github.com/Black-And-White-Club/majors-pool/app/modules/team/application"
	teamdomain "github.com/Black-And-White-Club/majors-pool/app/modules/team/domain"
	teamdb "github.com/Black-And-White-Club/majors-pool/app/modules/team/infrastructure/repositories"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/httpx"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// TeamHandlers implements the Handlers interface.
type TeamHandlers struct {
	service teamservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewTeamHandlers creates a new TeamHandlers.
func NewTeamHandlers(
	service teamservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &TeamHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// HandleListTeams lists a tournament's teams.
func (h *TeamHandlers) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.ListTeams(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, teams)
}

// HandleSubmitTeam stores a player's team.
func (h *TeamHandlers) HandleSubmitTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TeamHandlers.HandleSubmitTeam")
	defer span.End()

	var req teamservice.SubmitTeamRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.service.SubmitTeam(ctx, chi.URLParam(r, "key"), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, team)
}

// HandleDeleteTeam removes a team.
func (h *TeamHandlers) HandleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTeam(r.Context(), chi.URLParam(r, "key"), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tournamentdb.ErrNotFound), errors.Is(err, teamdb.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, teamdomain.ErrDuplicateTeam), errors.Is(err, teamservice.ErrPicksLocked):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, teamdomain.ErrIncompleteTeam),
		errors.Is(err, teamdomain.ErrPickNotInTier),
		errors.Is(err, teamservice.ErrTeamNameRequired):
		httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, teamservice.ErrInvalidTeamID):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Team request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
