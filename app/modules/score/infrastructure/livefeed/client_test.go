package livefeed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leaderboardJSON = `{
	"tournamentName": "Masters Tournament",
	"tournamentStatus": "In Progress",
	"currentRound": {"$numberInt": "2"},
	"leaderboardRows": [
		{"firstName": "Scottie", "lastName": "Scheffler", "status": "active",
		 "rounds": [{"roundId": {"$numberInt": "1"}, "strokes": {"$numberInt": "68"}}],
		 "currentHole": {"$numberInt": "7"}, "currentRoundScore": "-2", "roundComplete": false}
	]
}`

const scheduleJSON = `{"schedule": [
	{"tournId": "014", "name": "Masters Tournament"},
	{"tournId": "026", "name": "U.S. Open"},
	{"tournId": "033", "name": "PGA Championship"}
]}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		APIKey:            "secret",
		BaseURL:           srv.URL,
		RequestsPerSecond: 1000,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchLeaderboard_ByName(t *testing.T) {
	var scheduleCalls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, DefaultHost, r.Header.Get("X-RapidAPI-Host"))
		assert.Equal(t, "1", r.URL.Query().Get("orgId"))
		switch r.URL.Path {
		case "/schedule":
			atomic.AddInt32(&scheduleCalls, 1)
			assert.Equal(t, "2027", r.URL.Query().Get("year"))
			_, _ = io.WriteString(w, scheduleJSON)
		case "/leaderboard":
			assert.Equal(t, "014", r.URL.Query().Get("tournId"))
			assert.Equal(t, "2027", r.URL.Query().Get("year"))
			_, _ = io.WriteString(w, leaderboardJSON)
		default:
			http.NotFound(w, r)
		}
	})

	payload, err := client.FetchLeaderboard(context.Background(), "masters-2027")
	require.NoError(t, err)
	assert.Equal(t, "Masters Tournament", payload.TournamentName)
	assert.Equal(t, 2, payload.CurrentRound.Value)
	require.Len(t, payload.Rows, 1)
	assert.Equal(t, "Scottie Scheffler", payload.Rows[0].FullName())
	assert.Equal(t, -2, payload.Rows[0].CurrentRoundScore.Value)

	_, err = client.FetchLeaderboard(context.Background(), "masters-2027")
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&scheduleCalls), "schedule is cached per year")
}

func TestFetchLeaderboard_NumericIDSkipsSchedule(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/schedule" {
			t.Errorf("schedule should not be requested")
		}
		assert.Equal(t, "006", r.URL.Query().Get("tournId"))
		_, _ = io.WriteString(w, leaderboardJSON)
	})

	_, err := client.FetchLeaderboard(context.Background(), "006-2027")
	require.NoError(t, err)
}

func TestResolveTournID_FallsBackWhenScheduleFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	id, err := ParseLiveID("british-open-2027")
	require.NoError(t, err)
	got, err := client.ResolveTournID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "100", got)

	id, err = ParseLiveID("rbc-heritage-2027")
	require.NoError(t, err)
	_, err = client.ResolveTournID(context.Background(), id)
	assert.ErrorIs(t, err, ErrUnknownTournament)
}

func TestFetchLeaderboard_StatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := client.FetchLeaderboard(context.Background(), "014-2027")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFetchLeaderboard_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	})

	_, err := client.FetchLeaderboard(context.Background(), "014-2027")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream down", statusErr.Body)
}

func TestFetchLeaderboard_RequiresAPIKey(t *testing.T) {
	client := NewClient(Config{}, nil)
	_, err := client.FetchLeaderboard(context.Background(), "014-2027")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
