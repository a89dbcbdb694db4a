package score

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	scoreservice "github.com/Black-And-White-Club/majors-pool/app/modules/score/application"
	scorehandlers "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/handlers"
	"github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/livefeed"
	scorequeue "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/queue"
	scoredb "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/config"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the score module.
type Module struct {
	Repository    scoredb.Repository
	ScoreService  scoreservice.Service
	QueueService  scorequeue.QueueService
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// NewScoreModule creates the score module. When live refresh is enabled the
// River queue is created and the periodic refresh scheduled; it starts in Run.
func NewScoreModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	publisher message.Publisher,
	httpRouter chi.Router,
	requireAdmin func(http.Handler) http.Handler,
	tournaments scoreservice.TournamentLookup,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "score.NewScoreModule initializing")

	// 1. Live feed client
	feed := livefeed.NewClient(livefeed.Config{
		APIKey:            cfg.Live.APIKey,
		Host:              cfg.Live.APIHost,
		BaseURL:           cfg.Live.BaseURL,
		RequestsPerSecond: cfg.Live.RequestsPerSecond,
	}, logger)

	// 2. Service
	repo := scoredb.NewRepository(db)
	service := scoreservice.NewScoreService(
		repo,
		tournaments,
		feed,
		publisher,
		logger,
		metrics.NewScoreMetrics(obs.Registry),
		tracer,
		db,
	)

	// 3. Refresh queue
	var queueService *scorequeue.Service
	if cfg.Live.Enabled {
		schedule, err := scorequeue.NewSchedule(cfg.Live.RefreshCron, cfg.Live.RefreshInterval)
		if err != nil {
			return nil, err
		}
		queueService, err = scorequeue.NewService(
			ctx,
			logger,
			cfg.Postgres.DSN,
			metrics.NewOperationMetrics(obs.Registry, "queue"),
			service,
			schedule,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create score queue: %w", err)
		}
	} else {
		logger.InfoContext(ctx, "Live refresh disabled; scores are entered manually")
	}

	// 4. Handlers and routes
	var jobs scorehandlers.JobQueue
	if queueService != nil {
		jobs = queueService
	}
	handlers := scorehandlers.NewScoreHandlers(service, jobs, logger, tracer)

	if httpRouter != nil {
		httpRouter.Get("/api/tournaments/{key}/scores", handlers.HandleListScores)

		httpRouter.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Put("/api/tournaments/{key}/scores/{golfer}", handlers.HandleUpsertScore)
			r.Delete("/api/tournaments/{key}/scores/{golfer}", handlers.HandleDeleteScore)
			r.Post("/api/tournaments/{key}/live-refresh", handlers.HandleRefreshLive)
			r.Get("/api/live-refresh/jobs", handlers.HandleListRefreshJobs)
		})
	}

	module := &Module{
		Repository:    repo,
		ScoreService:  service,
		observability: obs,
	}
	if queueService != nil {
		module.QueueService = queueService
	}
	return module, nil
}

// Run starts the refresh queue, if any, and blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting score module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.QueueService != nil {
		if err := m.QueueService.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to start score queue", attr.Error(err))
			return
		}
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Score module goroutine stopped")
}

// Close stops the refresh queue.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping score module")

	// Stop the queue before cancelling so running jobs finish gracefully.
	var stopErr error
	if m.QueueService != nil {
		stopErr = m.QueueService.Stop(context.Background())
	}

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if stopErr != nil {
		logger.Error("Error stopping score queue", attr.Error(stopErr))
		return fmt.Errorf("error stopping score queue: %w", stopErr)
	}

	logger.Info("Score module stopped")
	return nil
}
