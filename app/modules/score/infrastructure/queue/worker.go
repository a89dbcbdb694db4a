package scorequeue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	scoreservice "github.com/Black-And-White-Club/majors-pool/app/modules/score/application"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/riverqueue/river"
)

const liveRefreshTimeout = 2 * time.Minute

// Refresher is the part of the score service the worker drives.
type Refresher interface {
	RefreshLive(ctx context.Context, tournamentKey string) (*scoreservice.RefreshResult, error)
	RefreshAllLive(ctx context.Context) (int, error)
}

// LiveRefreshWorker runs LiveRefreshJob.
type LiveRefreshWorker struct {
	river.WorkerDefaults[LiveRefreshJob]
	refresher Refresher
	logger    *slog.Logger
}

// NewLiveRefreshWorker creates a LiveRefreshWorker.
func NewLiveRefreshWorker(logger *slog.Logger, refresher Refresher) *LiveRefreshWorker {
	return &LiveRefreshWorker{refresher: refresher, logger: logger}
}

func (w *LiveRefreshWorker) Timeout(*river.Job[LiveRefreshJob]) time.Duration {
	return liveRefreshTimeout
}

// Work refreshes one tournament or all of them. A refresh already in flight
// is not an error; the running fetch will apply the latest data.
func (w *LiveRefreshWorker) Work(ctx context.Context, job *river.Job[LiveRefreshJob]) error {
	logger := w.logger.With(
		attr.Int("job_id", int(job.ID)),
		attr.Int("attempt", job.Attempt),
	)

	if job.Args.TournamentKey == "" {
		n, err := w.refresher.RefreshAllLive(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "Scheduled live refresh failed", attr.Int("refreshed", n), attr.Error(err))
			return err
		}
		logger.InfoContext(ctx, "Scheduled live refresh completed", attr.Int("refreshed", n))
		return nil
	}

	logger = logger.With(attr.TournamentKey(job.Args.TournamentKey))
	res, err := w.refresher.RefreshLive(ctx, job.Args.TournamentKey)
	if err != nil {
		if errors.Is(err, scoreservice.ErrFetchInProgress) {
			logger.InfoContext(ctx, "Live refresh skipped, fetch already in progress")
			return nil
		}
		if errors.Is(err, scoreservice.ErrNoLiveID) || errors.Is(err, scoreservice.ErrEmptyRoster) {
			logger.WarnContext(ctx, "Live refresh cancelled", attr.Error(err))
			return river.JobCancel(err)
		}
		logger.ErrorContext(ctx, "Live refresh failed", attr.Error(err))
		return err
	}

	logger.InfoContext(ctx, "Live refresh completed",
		attr.Int("applied", res.Applied),
		attr.Int("unmatched", res.Report.Unmatched),
		attr.Int("ambiguous", res.Report.Ambiguous),
	)
	return nil
}
