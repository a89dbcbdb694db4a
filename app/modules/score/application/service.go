package scoreservice

import (
	"log/slog"
	"sync"

	scoredb "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/metrics"
	"github.com/Black-And-White-Club/majors-pool/pkg/operations"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// ScoreService implements the Service interface.
type ScoreService struct {
	repo        scoredb.Repository
	tournaments TournamentLookup
	feed        LiveFeed
	publisher   message.Publisher
	logger      *slog.Logger
	metrics     metrics.ScoreMetrics
	runner      *operations.Runner

	inflightMu sync.Mutex
	inflight   map[string]struct{}
}

// NewScoreService creates a new ScoreService. publisher may be nil, in which
// case no events are emitted.
func NewScoreService(
	repo scoredb.Repository,
	tournaments TournamentLookup,
	feed LiveFeed,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics metrics.ScoreMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ScoreService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreService{
		repo:        repo,
		tournaments: tournaments,
		feed:        feed,
		publisher:   publisher,
		logger:      logger,
		metrics:     metrics,
		runner: &operations.Runner{
			Service: "ScoreService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
			DB:      db,
		},
		inflight: make(map[string]struct{}),
	}
}

var _ Service = (*ScoreService)(nil)

// tryBeginFetch marks a live fetch for key as running. It returns false when
// one already is.
func (s *ScoreService) tryBeginFetch(key string) bool {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *ScoreService) endFetch(key string) {
	s.inflightMu.Lock()
	delete(s.inflight, key)
	s.inflightMu.Unlock()
}
