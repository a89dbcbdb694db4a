package tournamentservice

import (
	"context"
	"time"

	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Tournament Repo
// ------------------------

type FakeTournamentRepo struct {
	trace []string

	GetByKeyFunc      func(ctx context.Context, db bun.IDB, key string) (*tournamentdb.Tournament, error)
	ListFunc          func(ctx context.Context, db bun.IDB) ([]tournamentdb.Tournament, error)
	UpsertFunc        func(ctx context.Context, db bun.IDB, tournament *tournamentdb.Tournament) error
	ReplaceRosterFunc func(ctx context.Context, db bun.IDB, key string, golfers []pooltypes.Golfer, tiers pooltypes.Tiers) error
	SetPicksLockFunc  func(ctx context.Context, db bun.IDB, key string, lockAt *time.Time) error
	DeleteFunc        func(ctx context.Context, db bun.IDB, key string) error
}

func NewFakeTournamentRepo() *FakeTournamentRepo {
	return &FakeTournamentRepo{
		trace: []string{},
	}
}

func (f *FakeTournamentRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeTournamentRepo) GetByKey(ctx context.Context, db bun.IDB, key string) (*tournamentdb.Tournament, error) {
	f.record("GetByKey")
	if f.GetByKeyFunc != nil {
		return f.GetByKeyFunc(ctx, db, key)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepo) List(ctx context.Context, db bun.IDB) ([]tournamentdb.Tournament, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeTournamentRepo) Upsert(ctx context.Context, db bun.IDB, tournament *tournamentdb.Tournament) error {
	f.record("Upsert")
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, db, tournament)
	}
	return nil
}

func (f *FakeTournamentRepo) ReplaceRoster(ctx context.Context, db bun.IDB, key string, golfers []pooltypes.Golfer, tiers pooltypes.Tiers) error {
	f.record("ReplaceRoster")
	if f.ReplaceRosterFunc != nil {
		return f.ReplaceRosterFunc(ctx, db, key, golfers, tiers)
	}
	return nil
}

func (f *FakeTournamentRepo) SetPicksLock(ctx context.Context, db bun.IDB, key string, lockAt *time.Time) error {
	f.record("SetPicksLock")
	if f.SetPicksLockFunc != nil {
		return f.SetPicksLockFunc(ctx, db, key, lockAt)
	}
	return nil
}

func (f *FakeTournamentRepo) Delete(ctx context.Context, db bun.IDB, key string) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, key)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeTournamentRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ tournamentdb.Repository = (*FakeTournamentRepo)(nil)
