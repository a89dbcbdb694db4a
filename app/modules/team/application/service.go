package teamservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	teamdomain "github.com/Black-And-White-Club/majors-pool/app/modules/team/domain"
	teamdb "github.com/Black-And-White-Club/majors-pool/app/modules/team/infrastructure/repositories"
	tournamentdomain "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/metrics"
	"github.com/Black-And-White-Club/majors-pool/pkg/operations"
	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/Black-And-White-Club/majors-pool/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// TeamService implements the Service interface.
type TeamService struct {
	repo        teamdb.Repository
	tournaments TournamentLookup
	logger      *slog.Logger
	runner      *operations.Runner
	now         func() time.Time
}

// NewTeamService creates a new TeamService.
func NewTeamService(
	repo teamdb.Repository,
	tournaments TournamentLookup,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TeamService{
		repo:        repo,
		tournaments: tournaments,
		logger:      logger,
		runner: &operations.Runner{
			Service: "TeamService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
			DB:      db,
		},
		now: time.Now,
	}
}

var _ Service = (*TeamService)(nil)

// ListTeams returns a tournament's teams in submission order.
func (s *TeamService) ListTeams(ctx context.Context, tournamentKey string) ([]pooltypes.Team, error) {
	return operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "ListTeams", tournamentKey, func(ctx context.Context) (results.OperationResult[[]pooltypes.Team, error], error) {
		rows, err := s.repo.ListByTournament(ctx, nil, tournamentKey)
		if err != nil {
			return results.OperationResult[[]pooltypes.Team, error]{}, fmt.Errorf("failed to list teams: %w", err)
		}
		return results.SuccessResult[[]pooltypes.Team, error](teamdb.Values(rows)), nil
	}))
}

// SubmitTeam validates and stores a new team. The tournament must exist and be
// unlocked, each pick must come from its tier, and no other team may hold the
// same six picks.
func (s *TeamService) SubmitTeam(ctx context.Context, tournamentKey string, req SubmitTeamRequest) (*pooltypes.Team, error) {
	submitTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*pooltypes.Team, error], error) {
		return s.submitTeamLogic(ctx, db, tournamentKey, req)
	}

	return operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "SubmitTeam", tournamentKey, func(ctx context.Context) (results.OperationResult[*pooltypes.Team, error], error) {
		return operations.RunInTx(s.runner, ctx, submitTx)
	}))
}

func (s *TeamService) submitTeamLogic(ctx context.Context, db bun.IDB, tournamentKey string, req SubmitTeamRequest) (results.OperationResult[*pooltypes.Team, error], error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return results.FailureResult[*pooltypes.Team, error](ErrTeamNameRequired), nil
	}

	tournament, err := s.tournaments.GetByKey(ctx, db, tournamentKey)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			return results.FailureResult[*pooltypes.Team, error](err), nil
		}
		return results.OperationResult[*pooltypes.Team, error]{}, fmt.Errorf("failed to load tournament: %w", err)
	}
	if tournamentdomain.Locked(tournament.PicksLockAt, s.now()) {
		return results.FailureResult[*pooltypes.Team, error](ErrPicksLocked), nil
	}

	picks := teamdomain.NormalizePicks(req.Picks)
	if err := teamdomain.ValidatePicks(picks, tournament.Tiers); err != nil {
		return results.FailureResult[*pooltypes.Team, error](err), nil
	}

	if err := s.repo.LockTournament(ctx, db, tournamentKey); err != nil {
		return results.OperationResult[*pooltypes.Team, error]{}, err
	}
	existing, err := s.repo.ListByTournament(ctx, db, tournamentKey)
	if err != nil {
		return results.OperationResult[*pooltypes.Team, error]{}, fmt.Errorf("failed to list teams: %w", err)
	}
	if dup, found := teamdomain.FindDuplicate(picks, teamdb.Values(existing)); found {
		s.logger.InfoContext(ctx, "Rejected duplicate team",
			attr.ExtractCorrelationID(ctx),
			attr.TournamentKey(tournamentKey),
			attr.String("existing_team", dup.Name),
		)
		return results.FailureResult[*pooltypes.Team, error](teamdomain.ErrDuplicateTeam), nil
	}

	row := &teamdb.Team{
		TournamentKey: tournamentKey,
		Name:          name,
		Picks:         picks,
	}
	if err := s.repo.Insert(ctx, db, row); err != nil {
		return results.OperationResult[*pooltypes.Team, error]{}, fmt.Errorf("failed to insert team: %w", err)
	}

	team := row.Value()
	return results.SuccessResult[*pooltypes.Team, error](&team), nil
}

// DeleteTeam removes a team. Like submissions, deletions close at the picks lock.
func (s *TeamService) DeleteTeam(ctx context.Context, tournamentKey, teamID string) error {
	_, err := operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "DeleteTeam", teamID, func(ctx context.Context) (results.OperationResult[bool, error], error) {
		id, err := uuid.Parse(teamID)
		if err != nil {
			return results.FailureResult[bool, error](fmt.Errorf("%w: %q", ErrInvalidTeamID, teamID)), nil
		}
		tournament, err := s.tournaments.GetByKey(ctx, nil, tournamentKey)
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return results.FailureResult[bool, error](err), nil
			}
			return results.OperationResult[bool, error]{}, fmt.Errorf("failed to load tournament: %w", err)
		}
		if tournamentdomain.Locked(tournament.PicksLockAt, s.now()) {
			return results.FailureResult[bool, error](ErrPicksLocked), nil
		}
		if err := s.repo.Delete(ctx, nil, tournamentKey, id); err != nil {
			if errors.Is(err, teamdb.ErrNotFound) {
				return results.FailureResult[bool, error](err), nil
			}
			return results.OperationResult[bool, error]{}, fmt.Errorf("failed to delete team: %w", err)
		}
		return results.SuccessResult[bool, error](true), nil
	}))
	return err
}
