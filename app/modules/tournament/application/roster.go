package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tournamentdomain "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/Black-And-White-Club/majors-pool/pkg/operations"
	"github.com/Black-And-White-Club/majors-pool/pkg/results"
	"github.com/uptrace/bun"
)

// UploadRoster parses a CSV or XLSX roster file and replaces the tournament roster.
func (s *TournamentService) UploadRoster(ctx context.Context, key, filename string, data []byte) (*RosterResult, error) {
	parser, err := s.parsers.GetParser(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRosterFile, err)
	}
	names, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRosterFile, err)
	}
	s.logger.InfoContext(ctx, "Parsed roster file",
		attr.ExtractCorrelationID(ctx),
		attr.TournamentKey(key),
		attr.String("filename", filename),
		attr.Int("rows", len(names)),
	)
	return s.ReplaceRoster(ctx, key, names)
}

// ReplaceRoster dedups names in order, rebuilds the six tiers and stores both.
// Existing teams are left untouched.
func (s *TournamentService) ReplaceRoster(ctx context.Context, key string, names []string) (*RosterResult, error) {
	replaceTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*RosterResult, error], error) {
		return s.replaceRosterLogic(ctx, db, key, names)
	}

	return operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "ReplaceRoster", key, func(ctx context.Context) (results.OperationResult[*RosterResult, error], error) {
		return operations.RunInTx(s.runner, ctx, replaceTx)
	}))
}

func (s *TournamentService) replaceRosterLogic(ctx context.Context, db bun.IDB, key string, names []string) (results.OperationResult[*RosterResult, error], error) {
	roster := tournamentdomain.BuildRoster(names)
	if len(roster) == 0 {
		return results.FailureResult[*RosterResult, error](fmt.Errorf("%w: no golfer names", ErrInvalidRosterFile)), nil
	}
	tiers := tournamentdomain.BuildTiers(roster)

	if err := s.repo.ReplaceRoster(ctx, db, key, roster, tiers); err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			return results.FailureResult[*RosterResult, error](err), nil
		}
		return results.OperationResult[*RosterResult, error]{}, fmt.Errorf("failed to replace roster: %w", err)
	}

	return results.SuccessResult[*RosterResult, error](&RosterResult{
		Golfers:    len(roster),
		Duplicates: countNonBlank(names) - len(roster),
		Tiers:      tiers,
	}), nil
}

func countNonBlank(names []string) int {
	n := 0
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			n++
		}
	}
	return n
}
