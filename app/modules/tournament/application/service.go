package tournamentservice

import (
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/majors-pool/app/modules/tournament/application/parsers"
	tournamentdomain "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/metrics"
	"github.com/Black-And-White-Club/majors-pool/pkg/operations"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "TournamentService"

// TournamentService implements the Service interface.
type TournamentService struct {
	repo    tournamentdb.Repository
	parsers parsers.ParserFactory
	logger  *slog.Logger
	runner  *operations.Runner
	now     func() time.Time
}

// NewTournamentService creates a new TournamentService.
func NewTournamentService(
	repo tournamentdb.Repository,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TournamentService{
		repo:    repo,
		parsers: parsers.NewFactory(),
		logger:  logger,
		runner: &operations.Runner{
			Service: serviceName,
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
			DB:      db,
		},
		now: time.Now,
	}
}

func (s *TournamentService) toInfo(t *tournamentdb.Tournament) *TournamentInfo {
	return &TournamentInfo{
		Key:         t.Key,
		Name:        t.Name,
		LogoURL:     t.LogoURL,
		Par:         t.Par,
		Golfers:     t.Golfers,
		Tiers:       t.Tiers,
		LiveID:      t.LiveID,
		PicksLockAt: t.PicksLockAt,
		PicksLocked: tournamentdomain.Locked(t.PicksLockAt, s.now()),
	}
}

var _ Service = (*TournamentService)(nil)
