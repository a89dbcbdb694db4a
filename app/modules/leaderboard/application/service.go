package leaderboardservice

import (
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/majors-pool/pkg/observability/metrics"
	"github.com/Black-And-White-Club/majors-pool/pkg/operations"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// chartLimit caps how many teams the standings chart shows.
const chartLimit = 15

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	tournaments TournamentLookup
	teams       TeamLister
	scores      ScoreLister
	logger      *slog.Logger
	metrics     metrics.LeaderboardMetrics
	runner      *operations.Runner
	palette     ChartPalette
	now         func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	tournaments TournamentLookup,
	teams TeamLister,
	scores ScoreLister,
	logger *slog.Logger,
	metrics metrics.LeaderboardMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardService{
		tournaments: tournaments,
		teams:       teams,
		scores:      scores,
		logger:      logger,
		metrics:     metrics,
		runner: &operations.Runner{
			Service: "LeaderboardService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
			DB:      db,
		},
		palette: DefaultPalette,
		now:     time.Now,
	}
}

var _ Service = (*LeaderboardService)(nil)
