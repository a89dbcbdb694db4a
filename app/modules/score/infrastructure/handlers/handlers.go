package scorehandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	scoreservice "github.com/Black-And-White-Club/majors-pool/app/modules/score/application"
	"github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/livefeed"
	scoredb "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/repositories"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/httpx"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// ScoreHandlers implements the Handlers interface.
type ScoreHandlers struct {
	service scoreservice.Service
	queue   JobQueue
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewScoreHandlers creates a new ScoreHandlers. queue may be nil when the
// job queue is disabled; async refreshes then report 503.
func NewScoreHandlers(
	service scoreservice.Service,
	queue JobQueue,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &ScoreHandlers{
		service: service,
		queue:   queue,
		logger:  logger,
		tracer:  tracer,
	}
}

// HandleListScores lists a tournament's scores with their scoring lines.
func (h *ScoreHandlers) HandleListScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.service.ListScores(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, scores)
}

// HandleUpsertScore replaces one golfer's score record.
func (h *ScoreHandlers) HandleUpsertScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScoreHandlers.HandleUpsertScore")
	defer span.End()

	golfer, err := golferParam(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid golfer name")
		return
	}

	var req scoreservice.ManualScoreRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.GolferName = golfer

	view, err := h.service.UpsertScore(ctx, chi.URLParam(r, "key"), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

// HandleDeleteScore clears one golfer's score record.
func (h *ScoreHandlers) HandleDeleteScore(w http.ResponseWriter, r *http.Request) {
	golfer, err := golferParam(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid golfer name")
		return
	}
	if err := h.service.DeleteScore(r.Context(), chi.URLParam(r, "key"), golfer); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRefreshLive pulls live scores now and returns the ingestion report.
// With ?async=true the refresh is queued instead and the job id returned.
func (h *ScoreHandlers) HandleRefreshLive(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScoreHandlers.HandleRefreshLive")
	defer span.End()

	key := chi.URLParam(r, "key")

	if async, _ := strconv.ParseBool(r.URL.Query().Get("async")); async {
		if h.queue == nil {
			httpx.WriteError(w, http.StatusServiceUnavailable, "refresh queue is disabled")
			return
		}
		jobID, err := h.queue.EnqueueRefresh(ctx, key)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusAccepted, map[string]any{"job_id": jobID})
		return
	}

	result, err := h.service.RefreshLive(ctx, key)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

// HandleListRefreshJobs lists queued and running refresh jobs.
func (h *ScoreHandlers) HandleListRefreshJobs(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil {
		httpx.WriteError(w, http.StatusServiceUnavailable, "refresh queue is disabled")
		return
	}
	jobs, err := h.queue.ListJobs(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, jobs)
}

// golferParam unescapes the {golfer} segment; names carry spaces and dots.
func golferParam(r *http.Request) (string, error) {
	return url.PathUnescape(chi.URLParam(r, "golfer"))
}

func (h *ScoreHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tournamentdb.ErrNotFound), errors.Is(err, scoredb.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, scoreservice.ErrFetchInProgress):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, scoreservice.ErrInvalidScore),
		errors.Is(err, scoreservice.ErrGolferNotOnRoster),
		errors.Is(err, scoreservice.ErrNoLiveID),
		errors.Is(err, scoreservice.ErrEmptyRoster),
		errors.Is(err, livefeed.ErrInvalidLiveID),
		errors.Is(err, livefeed.ErrUnknownTournament),
		errors.Is(err, livefeed.ErrNotFound):
		httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, livefeed.ErrRateLimited):
		w.Header().Set("Retry-After", "60")
		httpx.WriteError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, livefeed.ErrUnauthorized),
		errors.Is(err, livefeed.ErrBadRequest),
		errors.Is(err, livefeed.ErrNotConfigured):
		h.logger.WarnContext(r.Context(), "Live feed rejected request",
			attr.ExtractCorrelationID(r.Context()),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Score request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
