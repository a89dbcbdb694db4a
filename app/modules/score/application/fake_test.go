package scoreservice

import (
	"context"
	"sync"

	scoredomain "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/repositories"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Score Repo
// ------------------------

type FakeScoreRepo struct {
	mu    sync.Mutex
	trace []string

	ListByTournamentFunc func(ctx context.Context, db bun.IDB, tournamentKey string) ([]scoredb.Score, error)
	GetFunc              func(ctx context.Context, db bun.IDB, tournamentKey, golferName string) (*scoredb.Score, error)
	UpsertFunc           func(ctx context.Context, db bun.IDB, score *scoredb.Score) error
	UpsertBatchFunc      func(ctx context.Context, db bun.IDB, scores []scoredb.Score) error
	DeleteFunc           func(ctx context.Context, db bun.IDB, tournamentKey, golferName string) error
}

func NewFakeScoreRepo() *FakeScoreRepo {
	return &FakeScoreRepo{
		trace: []string{},
	}
}

func (f *FakeScoreRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeScoreRepo) ListByTournament(ctx context.Context, db bun.IDB, tournamentKey string) ([]scoredb.Score, error) {
	f.record("ListByTournament")
	if f.ListByTournamentFunc != nil {
		return f.ListByTournamentFunc(ctx, db, tournamentKey)
	}
	return nil, nil
}

func (f *FakeScoreRepo) Get(ctx context.Context, db bun.IDB, tournamentKey, golferName string) (*scoredb.Score, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, db, tournamentKey, golferName)
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeScoreRepo) Upsert(ctx context.Context, db bun.IDB, score *scoredb.Score) error {
	f.record("Upsert")
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, db, score)
	}
	return nil
}

func (f *FakeScoreRepo) UpsertBatch(ctx context.Context, db bun.IDB, scores []scoredb.Score) error {
	f.record("UpsertBatch")
	if f.UpsertBatchFunc != nil {
		return f.UpsertBatchFunc(ctx, db, scores)
	}
	return nil
}

func (f *FakeScoreRepo) Delete(ctx context.Context, db bun.IDB, tournamentKey, golferName string) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, tournamentKey, golferName)
	}
	return nil
}

func (f *FakeScoreRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ scoredb.Repository = (*FakeScoreRepo)(nil)

// ------------------------
// Fake Tournament Lookup
// ------------------------

type FakeTournamentLookup struct {
	Tournaments map[string]*tournamentdb.Tournament
	ListErr     error
}

func (f *FakeTournamentLookup) GetByKey(ctx context.Context, db bun.IDB, key string) (*tournamentdb.Tournament, error) {
	if t, ok := f.Tournaments[key]; ok {
		return t, nil
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentLookup) List(ctx context.Context, db bun.IDB) ([]tournamentdb.Tournament, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]tournamentdb.Tournament, 0, len(f.Tournaments))
	for _, t := range f.Tournaments {
		out = append(out, *t)
	}
	return out, nil
}

var _ TournamentLookup = (*FakeTournamentLookup)(nil)

// ------------------------
// Fake Live Feed
// ------------------------

type FakeLiveFeed struct {
	FetchFunc func(ctx context.Context, liveID string) (*scoredomain.LeaderboardPayload, error)
}

func (f *FakeLiveFeed) FetchLeaderboard(ctx context.Context, liveID string) (*scoredomain.LeaderboardPayload, error) {
	if f.FetchFunc != nil {
		return f.FetchFunc(ctx, liveID)
	}
	return &scoredomain.LeaderboardPayload{}, nil
}

var _ LiveFeed = (*FakeLiveFeed)(nil)

// ------------------------
// Recording Publisher
// ------------------------

type RecordingPublisher struct {
	mu       sync.Mutex
	Messages map[string][]*message.Message
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{Messages: map[string][]*message.Message{}}
}

func (p *RecordingPublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Messages[topic] = append(p.Messages[topic], messages...)
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

func (p *RecordingPublisher) Count(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Messages[topic])
}

var _ message.Publisher = (*RecordingPublisher)(nil)
