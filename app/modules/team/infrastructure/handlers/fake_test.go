package teamhandlers

import (
	"context"

	teamservice "github.com/Black-And-White-Club/majors-pool/app/modules/team/application"
	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	trace []string

	ListTeamsFunc  func(ctx context.Context, tournamentKey string) ([]pooltypes.Team, error)
	SubmitTeamFunc func(ctx context.Context, tournamentKey string, req teamservice.SubmitTeamRequest) (*pooltypes.Team, error)
	DeleteTeamFunc func(ctx context.Context, tournamentKey, teamID string) error
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) ListTeams(ctx context.Context, tournamentKey string) ([]pooltypes.Team, error) {
	f.record("ListTeams")
	if f.ListTeamsFunc != nil {
		return f.ListTeamsFunc(ctx, tournamentKey)
	}
	return []pooltypes.Team{}, nil
}

func (f *FakeService) SubmitTeam(ctx context.Context, tournamentKey string, req teamservice.SubmitTeamRequest) (*pooltypes.Team, error) {
	f.record("SubmitTeam")
	if f.SubmitTeamFunc != nil {
		return f.SubmitTeamFunc(ctx, tournamentKey, req)
	}
	return &pooltypes.Team{Name: req.Name, Picks: req.Picks}, nil
}

func (f *FakeService) DeleteTeam(ctx context.Context, tournamentKey, teamID string) error {
	f.record("DeleteTeam")
	if f.DeleteTeamFunc != nil {
		return f.DeleteTeamFunc(ctx, tournamentKey, teamID)
	}
	return nil
}
