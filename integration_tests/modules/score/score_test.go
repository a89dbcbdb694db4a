//go:build integration

package scoreintegrationtests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	scoreservice "github.com/Black-And-White-Club/majors-pool/app/modules/score/application"
	scoredomain "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain"
	scoreevents "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain/events"
	scoredb "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/repositories"
	tournamentdomain "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/integration_tests/testutils"
	"github.com/Black-And-White-Club/majors-pool/pkg/eventbus"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/metrics"
	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	payload *scoredomain.LeaderboardPayload
}

func (f *stubFeed) FetchLeaderboard(context.Context, string) (*scoredomain.LeaderboardPayload, error) {
	return f.payload, nil
}

type deps struct {
	env     *testutils.TestEnvironment
	service *scoreservice.ScoreService
	bus     *gochannel.GoChannel
}

func setup(t *testing.T, feed scoreservice.LiveFeed) deps {
	t.Helper()
	env := testutils.GetOrCreateTestEnv(t)
	env.Reset(t)

	obs := observability.NewNoop()
	bus := eventbus.NewGoChannelBus(obs.Logger)
	t.Cleanup(func() { bus.Close() })

	svc := scoreservice.NewScoreService(
		scoredb.NewRepository(env.DB),
		tournamentdb.NewRepository(env.DB),
		feed,
		bus,
		obs.Logger,
		metrics.NewNoopScoreMetrics(),
		obs.Tracer,
		env.DB,
	)
	return deps{env: env, service: svc, bus: bus}
}

func seedMasters(t *testing.T, env *testutils.TestEnvironment, names []string) {
	t.Helper()
	repo := tournamentdb.NewRepository(env.DB)
	liveID := "014"
	require.NoError(t, repo.Upsert(env.Ctx, nil, &tournamentdb.Tournament{
		Key:    "masters-2027",
		Name:   "The Masters",
		Par:    72,
		LiveID: &liveID,
	}))
	roster := tournamentdomain.BuildRoster(names)
	require.NoError(t, repo.ReplaceRoster(env.Ctx, nil, "masters-2027", roster, tournamentdomain.BuildTiers(roster)))
}

func TestScore_ManualUpsertPublishesEvent(t *testing.T) {
	d := setup(t, &stubFeed{})
	seedMasters(t, d.env, []string{"Scottie Scheffler", "Rory McIlroy", "Ludvig Åberg"})

	messages, err := d.bus.Subscribe(d.env.Ctx, scoreevents.ScoresAppliedV1)
	require.NoError(t, err)

	view, err := d.service.UpsertScore(d.env.Ctx, "masters-2027", scoreservice.ManualScoreRequest{
		GolferName: "Rory  McIlroy",
		Rounds:     pooltypes.RoundsOf(68, 70),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rory McIlroy", view.GolferName)
	assert.Equal(t, -6, view.Score.ToPar)

	select {
	case msg := <-messages:
		payload, err := eventbus.Decode[scoreevents.ScoresAppliedPayloadV1](msg)
		require.NoError(t, err)
		msg.Ack()
		assert.Equal(t, "masters-2027", payload.TournamentKey)
		assert.Equal(t, scoreevents.SourceManual, payload.Source)
		assert.Equal(t, []string{"Rory McIlroy"}, payload.Golfers)
	case <-time.After(5 * time.Second):
		t.Fatal("no scores applied event")
	}

	_, err = d.service.UpsertScore(d.env.Ctx, "masters-2027", scoreservice.ManualScoreRequest{
		GolferName: "Tiger Woods",
		Rounds:     pooltypes.RoundsOf(70),
	})
	assert.True(t, errors.Is(err, scoreservice.ErrGolferNotOnRoster), "got %v", err)
}

func TestScore_RefreshLiveMatchesRoster(t *testing.T) {
	raw := `{
		"tournamentName": "Masters Tournament",
		"tournamentStatus": "In Progress",
		"currentRound": 2,
		"leaderboardRows": [
			{"firstName": "Scottie", "lastName": "Scheffler", "status": "active",
			 "rounds": [{"roundId": 1, "strokes": 66}], "currentHole": 9, "roundComplete": false},
			{"firstName": "Ludvig", "lastName": "Aberg", "status": "active",
			 "rounds": [{"roundId": 1, "strokes": 71}], "roundComplete": true},
			{"firstName": "Unknown", "lastName": "Amateur", "status": "active",
			 "rounds": [{"roundId": 1, "strokes": 80}]}
		]
	}`
	var payload scoredomain.LeaderboardPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	d := setup(t, &stubFeed{payload: &payload})
	seedMasters(t, d.env, []string{"Scottie Scheffler", "Rory McIlroy", "Ludvig Åberg"})

	result, err := d.service.RefreshLive(d.env.Ctx, "masters-2027")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 1, result.Report.Unmatched)

	views, err := d.service.ListScores(d.env.Ctx, "masters-2027")
	require.NoError(t, err)
	byName := make(map[string]scoreservice.ScoreView, len(views))
	for _, v := range views {
		byName[v.GolferName] = v
	}
	require.Contains(t, byName, "Scottie Scheffler")
	require.Contains(t, byName, "Ludvig Åberg")
	assert.Equal(t, 66, *byName["Scottie Scheffler"].Rounds[0])
	assert.Equal(t, scoredb.SourceLive, byName["Ludvig Åberg"].Source)
}

func TestScore_UpsertBatchReplacesRows(t *testing.T) {
	env := testutils.GetOrCreateTestEnv(t)
	env.Reset(t)
	gen := testutils.NewTestDataGenerator(31)
	seeded := env.SeedTournament(t, gen, 12)
	repo := scoredb.NewRepository(env.DB)

	rows := make([]scoredb.Score, 0, 4)
	for _, name := range seeded.Roster[:4] {
		rows = append(rows, scoredb.FromRecord(seeded.Key, gen.GenerateScore(name, 2, true), scoredb.SourceLive))
	}
	require.NoError(t, repo.UpsertBatch(env.Ctx, nil, rows))

	rows[0].MadeCut = false
	require.NoError(t, repo.UpsertBatch(env.Ctx, nil, rows[:1]))

	stored, err := repo.ListByTournament(env.Ctx, nil, seeded.Key)
	require.NoError(t, err)
	assert.Len(t, stored, 4)

	got, err := repo.Get(env.Ctx, nil, seeded.Key, seeded.Roster[0])
	require.NoError(t, err)
	assert.False(t, got.MadeCut)

	require.NoError(t, repo.Delete(env.Ctx, nil, seeded.Key, seeded.Roster[0]))
	_, err = repo.Get(env.Ctx, nil, seeded.Key, seeded.Roster[0])
	assert.True(t, errors.Is(err, scoredb.ErrNotFound))
}
