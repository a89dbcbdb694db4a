package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/Black-And-White-Club/majors-pool/app/modules/leaderboard/application"
)

// FakeService implements leaderboardservice.Service for handler testing.
type FakeService struct {
	trace []string

	GetStandingsFunc    func(ctx context.Context, tournamentKey string) (*leaderboardservice.StandingsView, error)
	StandingsChartFunc  func(ctx context.Context, tournamentKey string) (*leaderboardservice.Chart, error)
	RecordStandingsFunc func(ctx context.Context, tournamentKey string) error
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) GetStandings(ctx context.Context, tournamentKey string) (*leaderboardservice.StandingsView, error) {
	f.record("GetStandings")
	if f.GetStandingsFunc != nil {
		return f.GetStandingsFunc(ctx, tournamentKey)
	}
	return &leaderboardservice.StandingsView{TournamentKey: tournamentKey, Version: "v1"}, nil
}

func (f *FakeService) StandingsChart(ctx context.Context, tournamentKey string) (*leaderboardservice.Chart, error) {
	f.record("StandingsChart")
	if f.StandingsChartFunc != nil {
		return f.StandingsChartFunc(ctx, tournamentKey)
	}
	return &leaderboardservice.Chart{PNG: []byte("\x89PNG"), Version: "v1"}, nil
}

func (f *FakeService) RecordStandings(ctx context.Context, tournamentKey string) error {
	f.record("RecordStandings:" + tournamentKey)
	if f.RecordStandingsFunc != nil {
		return f.RecordStandingsFunc(ctx, tournamentKey)
	}
	return nil
}

var _ leaderboardservice.Service = (*FakeService)(nil)
