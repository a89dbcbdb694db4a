package tournamenthandlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tournamentservice "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRouter(svc *FakeService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewTournamentHandlers(svc, logger, noop.NewTracerProvider().Tracer("test"))

	r := chi.NewRouter()
	r.Get("/api/tournaments", h.HandleListTournaments)
	r.Get("/api/tournaments/{key}", h.HandleGetTournament)
	r.Put("/api/tournaments/{key}", h.HandleUpsertTournament)
	r.Put("/api/tournaments/{key}/lock", h.HandleSetPicksLock)
	r.Delete("/api/tournaments/{key}", h.HandleDeleteTournament)
	r.Post("/api/tournaments/{key}/roster", h.HandleUploadRoster)
	return r
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTournamentHandlers_Get(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*FakeService)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "found",
			wantStatus: http.StatusOK,
			wantBody:   `"key":"masters-2027"`,
		},
		{
			name: "missing",
			setup: func(s *FakeService) {
				s.GetTournamentFunc = func(context.Context, string) (*tournamentservice.TournamentInfo, error) {
					return nil, tournamentdb.ErrNotFound
				}
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "database down",
			setup: func(s *FakeService) {
				s.GetTournamentFunc = func(context.Context, string) (*tournamentservice.TournamentInfo, error) {
					return nil, errors.New("connection refused")
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{}
			if tt.setup != nil {
				tt.setup(svc)
			}
			rec := serve(t, newTestRouter(svc), httptest.NewRequest(http.MethodGet, "/api/tournaments/masters-2027", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestTournamentHandlers_Upsert(t *testing.T) {
	t.Run("key comes from the path", func(t *testing.T) {
		var got tournamentservice.UpsertTournamentRequest
		svc := &FakeService{UpsertTournamentFunc: func(_ context.Context, req tournamentservice.UpsertTournamentRequest) (*tournamentservice.TournamentInfo, error) {
			got = req
			return &tournamentservice.TournamentInfo{Key: req.Key, Name: req.Name, Par: *req.Par}, nil
		}}

		req := httptest.NewRequest(http.MethodPut, "/api/tournaments/pga-2027", strings.NewReader(`{"name":"PGA Championship","par":70,"live_id":"pga-2027"}`))
		rec := serve(t, newTestRouter(svc), req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pga-2027", got.Key)
		assert.Equal(t, "PGA Championship", got.Name)
		require.NotNil(t, got.LiveID)
		assert.Equal(t, "pga-2027", *got.LiveID)
	})

	t.Run("invalid par", func(t *testing.T) {
		svc := &FakeService{UpsertTournamentFunc: func(context.Context, tournamentservice.UpsertTournamentRequest) (*tournamentservice.TournamentInfo, error) {
			return nil, fmt.Errorf("%w: got 80", tournamentservice.ErrInvalidPar)
		}}
		req := httptest.NewRequest(http.MethodPut, "/api/tournaments/pga-2027", strings.NewReader(`{"name":"PGA","par":80}`))
		rec := serve(t, newTestRouter(svc), req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "par must be between 68 and 76")
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &FakeService{}
		req := httptest.NewRequest(http.MethodPut, "/api/tournaments/pga-2027", strings.NewReader(`{"name":`))
		rec := serve(t, newTestRouter(svc), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.Trace())
	})
}

func TestTournamentHandlers_SetPicksLock(t *testing.T) {
	lockAt := time.Date(2027, 4, 8, 11, 45, 0, 0, time.UTC)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "accepted", wantStatus: http.StatusOK},
		{name: "in the past", err: tournamentdomain.ErrLockTimeInPast, wantStatus: http.StatusUnprocessableEntity},
		{name: "bad zone", err: tournamentdomain.ErrInvalidTimezone, wantStatus: http.StatusUnprocessableEntity},
		{name: "unknown tournament", err: tournamentdb.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{SetPicksLockFunc: func(_ context.Context, key, input, tz string) (*time.Time, error) {
				assert.Equal(t, "masters-2027", key)
				assert.Equal(t, "thursday 7:45am", input)
				assert.Equal(t, "EDT", tz)
				if tt.err != nil {
					return nil, tt.err
				}
				return &lockAt, nil
			}}

			req := httptest.NewRequest(http.MethodPut, "/api/tournaments/masters-2027/lock", strings.NewReader(`{"when":"thursday 7:45am","timezone":"EDT"}`))
			rec := serve(t, newTestRouter(svc), req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				assert.Contains(t, rec.Body.String(), "2027-04-08T11:45:00Z")
			}
		})
	}
}

func TestTournamentHandlers_Delete(t *testing.T) {
	svc := &FakeService{}
	rec := serve(t, newTestRouter(svc), httptest.NewRequest(http.MethodDelete, "/api/tournaments/masters-2027", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"DeleteTournament"}, svc.Trace())

	svc = &FakeService{DeleteTournamentFunc: func(context.Context, string) error { return tournamentdb.ErrNotFound }}
	rec = serve(t, newTestRouter(svc), httptest.NewRequest(http.MethodDelete, "/api/tournaments/masters-2027", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func multipartRoster(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/tournaments/masters-2027/roster", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestTournamentHandlers_UploadRoster(t *testing.T) {
	t.Run("passes file through", func(t *testing.T) {
		var gotName string
		var gotData []byte
		svc := &FakeService{UploadRosterFunc: func(_ context.Context, key, filename string, data []byte) (*tournamentservice.RosterResult, error) {
			gotName, gotData = filename, data
			return &tournamentservice.RosterResult{Golfers: 2}, nil
		}}

		rec := serve(t, newTestRouter(svc), multipartRoster(t, "file", "field.csv", []byte("Scottie Scheffler\nRory McIlroy\n")))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "field.csv", gotName)
		assert.Equal(t, "Scottie Scheffler\nRory McIlroy\n", string(gotData))
		assert.Contains(t, rec.Body.String(), `"golfers":2`)
	})

	t.Run("missing file field", func(t *testing.T) {
		svc := &FakeService{}
		rec := serve(t, newTestRouter(svc), multipartRoster(t, "upload", "field.csv", []byte("x")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.Trace())
	})

	t.Run("unsupported file", func(t *testing.T) {
		svc := &FakeService{UploadRosterFunc: func(context.Context, string, string, []byte) (*tournamentservice.RosterResult, error) {
			return nil, fmt.Errorf("%w: unsupported file type", tournamentservice.ErrInvalidRosterFile)
		}}
		rec := serve(t, newTestRouter(svc), multipartRoster(t, "file", "field.pdf", []byte("x")))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
