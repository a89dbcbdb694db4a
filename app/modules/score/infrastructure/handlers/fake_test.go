package scorehandlers

import (
	"context"

	scoreservice "github.com/Black-And-White-Club/majors-pool/app/modules/score/application"
	scorequeue "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/queue"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	trace []string

	ListScoresFunc     func(ctx context.Context, tournamentKey string) ([]scoreservice.ScoreView, error)
	UpsertScoreFunc    func(ctx context.Context, tournamentKey string, req scoreservice.ManualScoreRequest) (*scoreservice.ScoreView, error)
	DeleteScoreFunc    func(ctx context.Context, tournamentKey, golferName string) error
	RefreshLiveFunc    func(ctx context.Context, tournamentKey string) (*scoreservice.RefreshResult, error)
	RefreshAllLiveFunc func(ctx context.Context) (int, error)
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) ListScores(ctx context.Context, tournamentKey string) ([]scoreservice.ScoreView, error) {
	f.record("ListScores")
	if f.ListScoresFunc != nil {
		return f.ListScoresFunc(ctx, tournamentKey)
	}
	return []scoreservice.ScoreView{}, nil
}

func (f *FakeService) UpsertScore(ctx context.Context, tournamentKey string, req scoreservice.ManualScoreRequest) (*scoreservice.ScoreView, error) {
	f.record("UpsertScore")
	if f.UpsertScoreFunc != nil {
		return f.UpsertScoreFunc(ctx, tournamentKey, req)
	}
	return &scoreservice.ScoreView{}, nil
}

func (f *FakeService) DeleteScore(ctx context.Context, tournamentKey, golferName string) error {
	f.record("DeleteScore")
	if f.DeleteScoreFunc != nil {
		return f.DeleteScoreFunc(ctx, tournamentKey, golferName)
	}
	return nil
}

func (f *FakeService) RefreshLive(ctx context.Context, tournamentKey string) (*scoreservice.RefreshResult, error) {
	f.record("RefreshLive")
	if f.RefreshLiveFunc != nil {
		return f.RefreshLiveFunc(ctx, tournamentKey)
	}
	return &scoreservice.RefreshResult{}, nil
}

func (f *FakeService) RefreshAllLive(ctx context.Context) (int, error) {
	f.record("RefreshAllLive")
	if f.RefreshAllLiveFunc != nil {
		return f.RefreshAllLiveFunc(ctx)
	}
	return 0, nil
}

// ------------------------
// Fake Queue
// ------------------------

type FakeQueue struct {
	EnqueueRefreshFunc func(ctx context.Context, tournamentKey string) (int64, error)
	ListJobsFunc       func(ctx context.Context) ([]scorequeue.JobInfo, error)
}

func (f *FakeQueue) EnqueueRefresh(ctx context.Context, tournamentKey string) (int64, error) {
	if f.EnqueueRefreshFunc != nil {
		return f.EnqueueRefreshFunc(ctx, tournamentKey)
	}
	return 1, nil
}

func (f *FakeQueue) ListJobs(ctx context.Context) ([]scorequeue.JobInfo, error) {
	if f.ListJobsFunc != nil {
		return f.ListJobsFunc(ctx)
	}
	return []scorequeue.JobInfo{}, nil
}
