package tournamenthandlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	tournamentservice "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/httpx"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// maxRosterBytes bounds an uploaded roster file.
const maxRosterBytes = 5 << 20

// TournamentHandlers implements the Handlers interface.
type TournamentHandlers struct {
	service tournamentservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewTournamentHandlers creates a new TournamentHandlers.
func NewTournamentHandlers(
	service tournamentservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &TournamentHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// UpsertTournamentBody is the body of PUT /api/tournaments/{key}.
type UpsertTournamentBody struct {
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url,omitempty"`
	Par     *int    `json:"par,omitempty"`
	LiveID  *string `json:"live_id,omitempty"`
}

// PicksLockBody is the body of PUT /api/tournaments/{key}/lock.
type PicksLockBody struct {
	When     string `json:"when"`
	Timezone string `json:"timezone"`
}

// HandleListTournaments lists every tournament.
func (h *TournamentHandlers) HandleListTournaments(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListTournaments(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// HandleGetTournament returns one tournament with its roster and tiers.
func (h *TournamentHandlers) HandleGetTournament(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.GetTournament(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

// HandleUpsertTournament creates or edits a tournament.
func (h *TournamentHandlers) HandleUpsertTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TournamentHandlers.HandleUpsertTournament")
	defer span.End()

	var body UpsertTournamentBody
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.service.UpsertTournament(ctx, tournamentservice.UpsertTournamentRequest{
		Key:     chi.URLParam(r, "key"),
		Name:    body.Name,
		LogoURL: body.LogoURL,
		Par:     body.Par,
		LiveID:  body.LiveID,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

// HandleSetPicksLock sets the picks deadline from natural language input.
func (h *TournamentHandlers) HandleSetPicksLock(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TournamentHandlers.HandleSetPicksLock")
	defer span.End()

	var body PicksLockBody
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	lockAt, err := h.service.SetPicksLock(ctx, chi.URLParam(r, "key"), body.When, body.Timezone)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"picks_lock_at": lockAt})
}

// HandleDeleteTournament removes a tournament with its teams and scores.
func (h *TournamentHandlers) HandleDeleteTournament(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTournament(r.Context(), chi.URLParam(r, "key")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUploadRoster replaces the roster from a multipart "file" upload.
func (h *TournamentHandlers) HandleUploadRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TournamentHandlers.HandleUploadRoster")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxRosterBytes+1<<10)
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxRosterBytes+1))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "failed to read roster file")
		return
	}
	if len(data) > maxRosterBytes {
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, "roster file is too large")
		return
	}

	res, err := h.service.UploadRoster(ctx, chi.URLParam(r, "key"), header.Filename, data)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *TournamentHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tournamentdb.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, tournamentservice.ErrInvalidKey),
		errors.Is(err, tournamentservice.ErrNameRequired),
		errors.Is(err, tournamentservice.ErrInvalidPar),
		errors.Is(err, tournamentservice.ErrInvalidRosterFile),
		errors.Is(err, tournamentdomain.ErrInvalidTimezone),
		errors.Is(err, tournamentdomain.ErrLockTimeInPast),
		errors.Is(err, tournamentdomain.ErrUnrecognizedTime):
		httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Tournament request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
