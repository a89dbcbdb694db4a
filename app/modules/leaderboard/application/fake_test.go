package leaderboardservice

import (
	"context"
	"errors"

	scoredb "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/repositories"
	teamdb "github.com/Black-And-White-Club/majors-pool/app/modules/team/infrastructure/repositories"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Snapshot Source
// ------------------------

// FakeSnapshot serves a single tournament's rows to all three lookups.
type FakeSnapshot struct {
	trace []string

	Tournament *tournamentdb.Tournament
	Teams      []teamdb.Team
	Scores     []scoredb.Score
	TeamsErr   error
	ScoresErr  error
}

func (f *FakeSnapshot) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeSnapshot) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeSnapshot) GetByKey(ctx context.Context, db bun.IDB, key string) (*tournamentdb.Tournament, error) {
	f.record("GetTournament")
	if f.Tournament == nil || f.Tournament.Key != key {
		return nil, tournamentdb.ErrNotFound
	}
	return f.Tournament, nil
}

type fakeTeams struct{ *FakeSnapshot }

func (f fakeTeams) ListByTournament(ctx context.Context, db bun.IDB, tournamentKey string) ([]teamdb.Team, error) {
	f.record("ListTeams")
	return f.Teams, f.TeamsErr
}

type fakeScores struct{ *FakeSnapshot }

func (f fakeScores) ListByTournament(ctx context.Context, db bun.IDB, tournamentKey string) ([]scoredb.Score, error) {
	f.record("ListScores")
	return f.Scores, f.ScoresErr
}

var (
	_ TournamentLookup = (*FakeSnapshot)(nil)
	_ TeamLister       = fakeTeams{}
	_ ScoreLister      = fakeScores{}
)

var errBoom = errors.New("boom")
