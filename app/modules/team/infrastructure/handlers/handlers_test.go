package teamhandlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	teamservice "github.com/Black-And-White-Club/majors-pool/app/modules/team/application"
	teamdomain "github.com/Black-And-White-Club/majors-pool/app/modules/team/domain"
	teamdb "github.com/Black-And-White-Club/majors-pool/app/modules/team/infrastructure/repositories"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

const submitBody = `{"name":"Amen Corner","picks":{"tier1":"Scottie Scheffler","tier2":"Ludvig Aberg","tier3":"Sam Burns","tier4":"Tom Kim","tier5":"Adam Scott","tier6":"Fred Couples"}}`

func newTestRouter(svc *FakeService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewTeamHandlers(svc, logger, noop.NewTracerProvider().Tracer("test"))

	r := chi.NewRouter()
	r.Get("/api/tournaments/{key}/teams", h.HandleListTeams)
	r.Post("/api/tournaments/{key}/teams", h.HandleSubmitTeam)
	r.Delete("/api/tournaments/{key}/teams/{id}", h.HandleDeleteTeam)
	return r
}

func TestTeamHandlers_SubmitTeam(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "created", body: submitBody, wantStatus: http.StatusCreated},
		{name: "duplicate picks", body: submitBody, err: teamdomain.ErrDuplicateTeam, wantStatus: http.StatusConflict},
		{name: "locked", body: submitBody, err: teamservice.ErrPicksLocked, wantStatus: http.StatusConflict},
		{name: "incomplete", body: submitBody, err: fmt.Errorf("%w: missing tier6", teamdomain.ErrIncompleteTeam), wantStatus: http.StatusUnprocessableEntity},
		{name: "pick outside tier", body: submitBody, err: fmt.Errorf("%w: tier1", teamdomain.ErrPickNotInTier), wantStatus: http.StatusUnprocessableEntity},
		{name: "unknown tournament", body: submitBody, err: tournamentdb.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "storage failure", body: submitBody, err: errors.New("deadlock"), wantStatus: http.StatusInternalServerError},
		{name: "bad json", body: `{"name":1}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got teamservice.SubmitTeamRequest
			svc := &FakeService{SubmitTeamFunc: func(_ context.Context, key string, req teamservice.SubmitTeamRequest) (*pooltypes.Team, error) {
				assert.Equal(t, "masters-2027", key)
				got = req
				if tt.err != nil {
					return nil, tt.err
				}
				return &pooltypes.Team{ID: "4b7f6a8e-0000-4000-8000-000000000001", Name: req.Name, Picks: req.Picks}, nil
			}}

			req := httptest.NewRequest(http.MethodPost, "/api/tournaments/masters-2027/teams", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "Amen Corner", got.Name)
				assert.Equal(t, "Fred Couples", got.Picks["tier6"])
				assert.Contains(t, rec.Body.String(), `"id":"4b7f6a8e-0000-4000-8000-000000000001"`)
			}
		})
	}
}

func TestTeamHandlers_ListTeams(t *testing.T) {
	svc := &FakeService{ListTeamsFunc: func(context.Context, string) ([]pooltypes.Team, error) {
		return []pooltypes.Team{{ID: "a", Name: "Amen Corner"}, {ID: "b", Name: "Rae's Creek"}}, nil
	}}

	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tournaments/masters-2027/teams", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rae's Creek")
}

func TestTeamHandlers_DeleteTeam(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "unknown team", err: teamdb.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "bad id", err: teamservice.ErrInvalidTeamID, wantStatus: http.StatusBadRequest},
		{name: "locked", err: teamservice.ErrPicksLocked, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{DeleteTeamFunc: func(_ context.Context, key, id string) error {
				assert.Equal(t, "masters-2027", key)
				assert.Equal(t, "abc", id)
				return tt.err
			}}

			rec := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/tournaments/masters-2027/teams/abc", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
