package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tournamentdomain "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/operations"
	"github.com/Black-And-White-Club/majors-pool/pkg/results"
	"github.com/uptrace/bun"
)

// SetPicksLock parses a natural-language deadline in timezone and stores it.
// Blank input clears the deadline and returns nil.
func (s *TournamentService) SetPicksLock(ctx context.Context, key, input, timezone string) (*time.Time, error) {
	lockTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*time.Time, error], error) {
		return s.setPicksLockLogic(ctx, db, key, input, timezone)
	}

	return operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "SetPicksLock", key, func(ctx context.Context) (results.OperationResult[*time.Time, error], error) {
		return operations.RunInTx(s.runner, ctx, lockTx)
	}))
}

func (s *TournamentService) setPicksLockLogic(ctx context.Context, db bun.IDB, key, input, timezone string) (results.OperationResult[*time.Time, error], error) {
	var lockAt *time.Time
	if strings.TrimSpace(input) != "" {
		parsed, err := tournamentdomain.ParseLockTime(input, timezone, s.now())
		if err != nil {
			return results.FailureResult[*time.Time, error](err), nil
		}
		lockAt = &parsed
	}

	if err := s.repo.SetPicksLock(ctx, db, key, lockAt); err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			return results.FailureResult[*time.Time, error](err), nil
		}
		return results.OperationResult[*time.Time, error]{}, fmt.Errorf("failed to set picks lock: %w", err)
	}
	return results.SuccessResult[*time.Time, error](lockAt), nil
}
