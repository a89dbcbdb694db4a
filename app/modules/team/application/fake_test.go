package teamservice

import (
	"context"

	teamdb "github.com/Black-And-White-Club/majors-pool/app/modules/team/infrastructure/repositories"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Team Repo
// ------------------------

type FakeTeamRepo struct {
	trace []string

	ListByTournamentFunc func(ctx context.Context, db bun.IDB, tournamentKey string) ([]teamdb.Team, error)
	InsertFunc           func(ctx context.Context, db bun.IDB, team *teamdb.Team) error
	LockTournamentFunc   func(ctx context.Context, db bun.IDB, tournamentKey string) error
	DeleteFunc           func(ctx context.Context, db bun.IDB, tournamentKey string, id uuid.UUID) error
}

func NewFakeTeamRepo() *FakeTeamRepo {
	return &FakeTeamRepo{
		trace: []string{},
	}
}

func (f *FakeTeamRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeTeamRepo) ListByTournament(ctx context.Context, db bun.IDB, tournamentKey string) ([]teamdb.Team, error) {
	f.record("ListByTournament")
	if f.ListByTournamentFunc != nil {
		return f.ListByTournamentFunc(ctx, db, tournamentKey)
	}
	return nil, nil
}

func (f *FakeTeamRepo) Insert(ctx context.Context, db bun.IDB, team *teamdb.Team) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, team)
	}
	team.ID = uuid.New()
	return nil
}

func (f *FakeTeamRepo) LockTournament(ctx context.Context, db bun.IDB, tournamentKey string) error {
	f.record("LockTournament")
	if f.LockTournamentFunc != nil {
		return f.LockTournamentFunc(ctx, db, tournamentKey)
	}
	return nil
}

func (f *FakeTeamRepo) Delete(ctx context.Context, db bun.IDB, tournamentKey string, id uuid.UUID) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, tournamentKey, id)
	}
	return nil
}

func (f *FakeTeamRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ teamdb.Repository = (*FakeTeamRepo)(nil)

// ------------------------
// Fake Tournament Lookup
// ------------------------

type FakeTournamentLookup struct {
	GetByKeyFunc func(ctx context.Context, db bun.IDB, key string) (*tournamentdb.Tournament, error)
}

func (f *FakeTournamentLookup) GetByKey(ctx context.Context, db bun.IDB, key string) (*tournamentdb.Tournament, error) {
	if f.GetByKeyFunc != nil {
		return f.GetByKeyFunc(ctx, db, key)
	}
	return nil, tournamentdb.ErrNotFound
}

var _ TournamentLookup = (*FakeTournamentLookup)(nil)
