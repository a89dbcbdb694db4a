package leaderboardhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	leaderboardservice "github.com/Black-And-White-Club/majors-pool/app/modules/leaderboard/application"
	scoreevents "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain/events"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/eventbus"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestHandlers(svc *FakeService) Handlers {
	return NewLeaderboardHandlers(
		svc,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		noop.NewTracerProvider().Tracer("test"),
	)
}

func serve(h Handlers, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/tournaments/{key}/standings", h.HandleGetStandings)
	r.Get("/api/tournaments/{key}/standings.png", h.HandleGetStandingsChart)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandleScoresApplied(t *testing.T) {
	tests := []struct {
		name      string
		payload   []byte
		setup     func(*FakeService)
		wantErr   bool
		wantTrace []string
	}{
		{
			name:      "recomputes standings",
			payload:   mustJSON(t, scoreevents.ScoresAppliedPayloadV1{TournamentKey: "masters-2027", Source: scoreevents.SourceLive}),
			wantTrace: []string{"RecordStandings:masters-2027"},
		},
		{
			name:      "malformed payload is dropped",
			payload:   []byte("not json"),
			wantTrace: []string{},
		},
		{
			name:    "unknown tournament is dropped",
			payload: mustJSON(t, scoreevents.ScoresAppliedPayloadV1{TournamentKey: "gone"}),
			setup: func(s *FakeService) {
				s.RecordStandingsFunc = func(ctx context.Context, key string) error { return tournamentdb.ErrNotFound }
			},
			wantTrace: []string{"RecordStandings:gone"},
		},
		{
			name:    "infrastructure error is retried",
			payload: mustJSON(t, scoreevents.ScoresAppliedPayloadV1{TournamentKey: "masters-2027"}),
			setup: func(s *FakeService) {
				s.RecordStandingsFunc = func(ctx context.Context, key string) error { return errors.New("connection reset") }
			},
			wantErr:   true,
			wantTrace: []string{"RecordStandings:masters-2027"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeService()
			if tt.setup != nil {
				tt.setup(svc)
			}
			h := newTestHandlers(svc)

			err := h.HandleScoresApplied(message.NewMessage("msg-1", tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantTrace, svc.Trace())
		})
	}
}

func TestHandleScoresApplied_FromBusMessage(t *testing.T) {
	svc := NewFakeService()
	h := newTestHandlers(svc)

	msg, err := eventbus.NewMessage(context.Background(), "us-open-2027", scoreevents.ScoresAppliedPayloadV1{TournamentKey: "us-open-2027"})
	require.NoError(t, err)
	require.NoError(t, h.HandleScoresApplied(msg))
	assert.Equal(t, []string{"RecordStandings:us-open-2027"}, svc.Trace())
}

func TestHandleGetStandings(t *testing.T) {
	tests := []struct {
		name        string
		ifNoneMatch string
		setup       func(*FakeService)
		wantStatus  int
	}{
		{name: "ok", wantStatus: http.StatusOK},
		{name: "not modified", ifNoneMatch: `"v1"`, wantStatus: http.StatusNotModified},
		{name: "stale etag", ifNoneMatch: `"v0"`, wantStatus: http.StatusOK},
		{
			name: "unknown tournament",
			setup: func(s *FakeService) {
				s.GetStandingsFunc = func(ctx context.Context, key string) (*leaderboardservice.StandingsView, error) {
					return nil, tournamentdb.ErrNotFound
				}
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "internal error",
			setup: func(s *FakeService) {
				s.GetStandingsFunc = func(ctx context.Context, key string) (*leaderboardservice.StandingsView, error) {
					return nil, errors.New("db down")
				}
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeService()
			if tt.setup != nil {
				tt.setup(svc)
			}
			req := httptest.NewRequest(http.MethodGet, "/api/tournaments/masters-2027/standings", nil)
			if tt.ifNoneMatch != "" {
				req.Header.Set("If-None-Match", tt.ifNoneMatch)
			}

			rr := serve(newTestHandlers(svc), req)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, `"v1"`, rr.Header().Get("ETag"))
				var view leaderboardservice.StandingsView
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
				assert.Equal(t, "masters-2027", view.TournamentKey)
			}
		})
	}
}

func TestHandleGetStandingsChart(t *testing.T) {
	svc := NewFakeService()
	rr := serve(newTestHandlers(svc), httptest.NewRequest(http.MethodGet, "/api/tournaments/masters-2027/standings.png", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", rr.Body.String())
	assert.Equal(t, []string{"StandingsChart"}, svc.Trace())
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
