package leaderboard

import (
	"context"
	"fmt"
	"sync"

	leaderboardservice "github.com/Black-And-White-Club/majors-pool/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Black-And-White-Club/majors-pool/app/modules/leaderboard/infrastructure/handlers"
	leaderboardrouter "github.com/Black-And-White-Club/majors-pool/app/modules/leaderboard/infrastructure/router"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	cancelFunc         context.CancelFunc
	observability      observability.Observability
}

// NewLeaderboardModule creates and initializes a new leaderboard module.
func NewLeaderboardModule(
	ctx context.Context,
	obs observability.Observability,
	subscriber message.Subscriber,
	httpRouter chi.Router,
	tournaments leaderboardservice.TournamentLookup,
	teams leaderboardservice.TeamLister,
	scores leaderboardservice.ScoreLister,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule initializing")

	// 1. Initialize Metrics
	leaderboardMetrics := metrics.NewLeaderboardMetrics(obs.Registry)

	// 2. Initialize Service
	service := leaderboardservice.NewLeaderboardService(tournaments, teams, scores, logger, leaderboardMetrics, tracer, db)

	// 3. Initialize Handlers
	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, logger, tracer)

	// 4. Initialize Router
	router, err := leaderboardrouter.NewLeaderboardRouter(logger, subscriber, tracer, obs.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard router: %w", err)
	}
	router.Configure(ctx, handlers)

	// 5. Register HTTP routes
	if httpRouter != nil {
		httpRouter.Get("/api/tournaments/{key}/standings", handlers.HandleGetStandings)
		httpRouter.Get("/api/tournaments/{key}/standings.png", handlers.HandleGetStandingsChart)
	}

	return &Module{
		LeaderboardService: service,
		LeaderboardRouter:  router,
		observability:      obs,
	}, nil
}

// Run starts the leaderboard event router and blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.LeaderboardRouter.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Leaderboard router stopped with error", attr.Error(err))
		return
	}
	logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close shuts down the leaderboard module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.LeaderboardRouter != nil {
		if err := m.LeaderboardRouter.Close(); err != nil {
			logger.Error("Error closing LeaderboardRouter from module", attr.Error(err))
			return fmt.Errorf("error closing LeaderboardRouter: %w", err)
		}
	}

	logger.Info("Leaderboard module stopped")
	return nil
}
