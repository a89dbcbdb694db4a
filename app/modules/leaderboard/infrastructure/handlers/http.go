package leaderboardhandlers

import (
	"errors"
	"net/http"
	"strconv"

	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/httpx"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/go-chi/chi/v5"
)

// HandleGetStandings serves standings with the snapshot version as ETag.
func (h *LeaderboardHandlers) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := chi.URLParam(r, "key")

	view, err := h.service.GetStandings(ctx, key)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	etag := httpx.ETag(view.Version)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if httpx.NotModified(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

// HandleGetStandingsChart serves the standings bar chart.
func (h *LeaderboardHandlers) HandleGetStandingsChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := chi.URLParam(r, "key")

	chart, err := h.service.StandingsChart(ctx, key)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	etag := httpx.ETag(chart.Version)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if httpx.NotModified(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(chart.PNG)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(chart.PNG)
}

func (h *LeaderboardHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, tournamentdb.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "tournament not found")
		return
	}
	h.logger.ErrorContext(r.Context(), "Standings request failed", attr.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, "internal error")
}
