package tournamenthandlers

import (
	"context"
	"time"

	tournamentservice "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/application"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	trace []string

	ListTournamentsFunc  func(ctx context.Context) ([]tournamentservice.TournamentInfo, error)
	GetTournamentFunc    func(ctx context.Context, key string) (*tournamentservice.TournamentInfo, error)
	UpsertTournamentFunc func(ctx context.Context, req tournamentservice.UpsertTournamentRequest) (*tournamentservice.TournamentInfo, error)
	UploadRosterFunc     func(ctx context.Context, key, filename string, data []byte) (*tournamentservice.RosterResult, error)
	ReplaceRosterFunc    func(ctx context.Context, key string, names []string) (*tournamentservice.RosterResult, error)
	SetPicksLockFunc     func(ctx context.Context, key, input, timezone string) (*time.Time, error)
	DeleteTournamentFunc func(ctx context.Context, key string) error
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) ListTournaments(ctx context.Context) ([]tournamentservice.TournamentInfo, error) {
	f.record("ListTournaments")
	if f.ListTournamentsFunc != nil {
		return f.ListTournamentsFunc(ctx)
	}
	return []tournamentservice.TournamentInfo{}, nil
}

func (f *FakeService) GetTournament(ctx context.Context, key string) (*tournamentservice.TournamentInfo, error) {
	f.record("GetTournament")
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, key)
	}
	return &tournamentservice.TournamentInfo{Key: key}, nil
}

func (f *FakeService) UpsertTournament(ctx context.Context, req tournamentservice.UpsertTournamentRequest) (*tournamentservice.TournamentInfo, error) {
	f.record("UpsertTournament")
	if f.UpsertTournamentFunc != nil {
		return f.UpsertTournamentFunc(ctx, req)
	}
	return &tournamentservice.TournamentInfo{Key: req.Key, Name: req.Name}, nil
}

func (f *FakeService) UploadRoster(ctx context.Context, key, filename string, data []byte) (*tournamentservice.RosterResult, error) {
	f.record("UploadRoster")
	if f.UploadRosterFunc != nil {
		return f.UploadRosterFunc(ctx, key, filename, data)
	}
	return &tournamentservice.RosterResult{}, nil
}

func (f *FakeService) ReplaceRoster(ctx context.Context, key string, names []string) (*tournamentservice.RosterResult, error) {
	f.record("ReplaceRoster")
	if f.ReplaceRosterFunc != nil {
		return f.ReplaceRosterFunc(ctx, key, names)
	}
	return &tournamentservice.RosterResult{}, nil
}

func (f *FakeService) SetPicksLock(ctx context.Context, key, input, timezone string) (*time.Time, error) {
	f.record("SetPicksLock")
	if f.SetPicksLockFunc != nil {
		return f.SetPicksLockFunc(ctx, key, input, timezone)
	}
	return nil, nil
}

func (f *FakeService) DeleteTournament(ctx context.Context, key string) error {
	f.record("DeleteTournament")
	if f.DeleteTournamentFunc != nil {
		return f.DeleteTournamentFunc(ctx, key)
	}
	return nil
}
