package scorequeue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/riverqueue/river/rivertype"
)

const (
	queueName = "live"
	service   = "river"
)

// queueConfig keeps a single worker on the live queue so scheduled and
// admin-triggered refreshes run one at a time.
func queueConfig() map[string]river.QueueConfig {
	return map[string]river.QueueConfig{
		river.QueueDefault: {MaxWorkers: 5},
		queueName:          {MaxWorkers: 1},
	}
}

// QueueService defines the live refresh job operations.
type QueueService interface {
	// EnqueueRefresh queues an immediate refresh of one tournament.
	EnqueueRefresh(ctx context.Context, tournamentKey string) (int64, error)
	// ListJobs returns queued and running refresh jobs.
	ListJobs(ctx context.Context) ([]JobInfo, error)
	// HealthCheck verifies the queue database is reachable.
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service runs the periodic live refresh through River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics metrics.OperationMetrics
}

// NewService creates the River client, registers the live refresh worker and
// schedules it. A nil schedule registers the worker without a periodic job.
func NewService(ctx context.Context, logger *slog.Logger, dsn string, m metrics.OperationMetrics, refresher Refresher, schedule river.PeriodicSchedule) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_score_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	m.RecordOperationAttempt(ctx, "initialize_service", service)

	ctxLogger.Info("Initializing score queue service")

	// River requires pgx, not database/sql
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		ctxLogger.Error("Failed to parse DSN for River", attr.Error(err))
		m.RecordOperationFailure(ctx, "initialize_service", service)
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		ctxLogger.Error("Failed to create pgx pool for River", attr.Error(err))
		m.RecordOperationFailure(ctx, "initialize_service", service)
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		m.RecordOperationFailure(ctx, "initialize_service", service)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewLiveRefreshWorker(ctxLogger, refresher))

	var periodic []*river.PeriodicJob
	if schedule != nil {
		periodic = append(periodic, river.NewPeriodicJob(
			schedule,
			func() (river.JobArgs, *river.InsertOpts) {
				return LiveRefreshJob{}, &river.InsertOpts{Queue: queueName}
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		))
	}

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:       queueConfig(),
		Workers:      workers,
		PeriodicJobs: periodic,
		Logger:       logger,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		m.RecordOperationFailure(ctx, "initialize_service", service)
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	m.RecordOperationSuccess(ctx, "initialize_service", service)
	m.RecordOperationDuration(ctx, "initialize_service", service, time.Since(start))

	ctxLogger.Info("Score queue service initialized successfully", attr.Bool("periodic", schedule != nil))
	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		metrics: m,
	}, nil
}

// Migrate applies River's schema migrations using dsn.
func Migrate(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create river migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to run river migrations: %w", err)
	}
	return nil
}

// Start starts the River client.
func (s *Service) Start(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "start_service", service)

	s.logger.Info("Starting score queue service")

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_service", service)
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_service", service)
	s.metrics.RecordOperationDuration(ctx, "start_service", service, time.Since(start))

	s.logger.Info("Score queue service started successfully")
	return nil
}

// Stop stops the River client and closes its pool.
func (s *Service) Stop(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "stop_service", service)

	s.logger.Info("Stopping score queue service")

	err := s.client.Stop(ctx)
	s.pool.Close()
	if err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_service", service)
		return fmt.Errorf("failed to stop River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "stop_service", service)
	s.metrics.RecordOperationDuration(ctx, "stop_service", service, time.Since(start))

	s.logger.Info("Score queue service stopped successfully")
	return nil
}

// EnqueueRefresh queues an immediate refresh of one tournament. A refresh
// for the same tournament that is still pending is reused.
func (s *Service) EnqueueRefresh(ctx context.Context, tournamentKey string) (int64, error) {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "enqueue_refresh", service)

	res, err := s.client.Insert(ctx, LiveRefreshJob{TournamentKey: tournamentKey}, &river.InsertOpts{
		Queue: queueName,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRetryable,
				rivertype.JobStateRunning,
				rivertype.JobStateScheduled,
			},
		},
	})
	if err != nil {
		s.logger.Error("Failed to enqueue live refresh", attr.TournamentKey(tournamentKey), attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "enqueue_refresh", service)
		return 0, fmt.Errorf("failed to enqueue live refresh: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "enqueue_refresh", service)
	s.metrics.RecordOperationDuration(ctx, "enqueue_refresh", service, time.Since(start))

	s.logger.Info("Live refresh enqueued",
		attr.TournamentKey(tournamentKey),
		attr.Int("job_id", int(res.Job.ID)),
		attr.Bool("duplicate", res.UniqueSkippedAsDuplicate),
	)
	return res.Job.ID, nil
}

// ListJobs returns refresh jobs that have not finished.
func (s *Service) ListJobs(ctx context.Context) ([]JobInfo, error) {
	params := river.NewJobListParams().
		Kinds(LiveRefreshJob{}.Kind()).
		States(
			rivertype.JobStateAvailable,
			rivertype.JobStateRetryable,
			rivertype.JobStateRunning,
			rivertype.JobStateScheduled,
		).
		First(100)

	res, err := s.client.JobList(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobInfos(res.Jobs), nil
}

// HealthCheck verifies the queue database is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("river client is nil")
	}
	if err := s.pool.Ping(ctx); err != nil {
		s.logger.Error("Queue service health check failed", attr.Error(err))
		return fmt.Errorf("queue service health check failed: %w", err)
	}
	return nil
}

func jobInfos(rows []*rivertype.JobRow) []JobInfo {
	out := make([]JobInfo, 0, len(rows))
	for _, row := range rows {
		info := JobInfo{
			ID:          row.ID,
			State:       string(row.State),
			ScheduledAt: row.ScheduledAt.Format(time.RFC3339),
			Attempt:     row.Attempt,
			MaxAttempts: row.MaxAttempts,
		}
		var args LiveRefreshJob
		if err := json.Unmarshal(row.EncodedArgs, &args); err == nil {
			info.TournamentKey = args.TournamentKey
		}
		out = append(out, info)
	}
	return out
}
