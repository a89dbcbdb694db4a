package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	scoredomain "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/operations"
	"github.com/Black-And-White-Club/majors-pool/pkg/results"
	"github.com/uptrace/bun"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// ListTournaments returns every tournament, newest first.
func (s *TournamentService) ListTournaments(ctx context.Context) ([]TournamentInfo, error) {
	return operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "ListTournaments", "", func(ctx context.Context) (results.OperationResult[[]TournamentInfo, error], error) {
		rows, err := s.repo.List(ctx, nil)
		if err != nil {
			return results.OperationResult[[]TournamentInfo, error]{}, fmt.Errorf("failed to list tournaments: %w", err)
		}
		out := make([]TournamentInfo, 0, len(rows))
		for i := range rows {
			out = append(out, *s.toInfo(&rows[i]))
		}
		return results.SuccessResult[[]TournamentInfo, error](out), nil
	}))
}

// GetTournament retrieves a tournament by key.
func (s *TournamentService) GetTournament(ctx context.Context, key string) (*TournamentInfo, error) {
	return operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "GetTournament", key, func(ctx context.Context) (results.OperationResult[*TournamentInfo, error], error) {
		t, err := s.repo.GetByKey(ctx, nil, key)
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return results.FailureResult[*TournamentInfo, error](err), nil
			}
			return results.OperationResult[*TournamentInfo, error]{}, fmt.Errorf("failed to get tournament: %w", err)
		}
		return results.SuccessResult[*TournamentInfo, error](s.toInfo(t)), nil
	}))
}

// UpsertTournament creates a tournament or edits its name, logo, par and live id.
func (s *TournamentService) UpsertTournament(ctx context.Context, req UpsertTournamentRequest) (*TournamentInfo, error) {
	upsertTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*TournamentInfo, error], error) {
		return s.upsertTournamentLogic(ctx, db, req)
	}

	return operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "UpsertTournament", req.Key, func(ctx context.Context) (results.OperationResult[*TournamentInfo, error], error) {
		return operations.RunInTx(s.runner, ctx, upsertTx)
	}))
}

func (s *TournamentService) upsertTournamentLogic(ctx context.Context, db bun.IDB, req UpsertTournamentRequest) (results.OperationResult[*TournamentInfo, error], error) {
	key := strings.TrimSpace(req.Key)
	if !keyPattern.MatchString(key) {
		return results.FailureResult[*TournamentInfo, error](ErrInvalidKey), nil
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return results.FailureResult[*TournamentInfo, error](ErrNameRequired), nil
	}
	if req.Par != nil && !scoredomain.ValidPar(*req.Par) {
		return results.FailureResult[*TournamentInfo, error](fmt.Errorf("%w: got %d", ErrInvalidPar, *req.Par)), nil
	}

	existing, err := s.repo.GetByKey(ctx, db, key)
	if err != nil && !errors.Is(err, tournamentdb.ErrNotFound) {
		return results.OperationResult[*TournamentInfo, error]{}, fmt.Errorf("failed to check existing tournament: %w", err)
	}

	t := existing
	if t == nil {
		t = &tournamentdb.Tournament{
			Key: key,
			Par: scoredomain.DefaultPar,
		}
	}
	t.Name = name
	t.LogoURL = trimOptional(req.LogoURL)
	t.LiveID = trimOptional(req.LiveID)
	if req.Par != nil {
		t.Par = *req.Par
	}

	if err := s.repo.Upsert(ctx, db, t); err != nil {
		return results.OperationResult[*TournamentInfo, error]{}, fmt.Errorf("failed to upsert tournament: %w", err)
	}
	return results.SuccessResult[*TournamentInfo, error](s.toInfo(t)), nil
}

// DeleteTournament removes a tournament with its teams and scores.
func (s *TournamentService) DeleteTournament(ctx context.Context, key string) error {
	_, err := operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "DeleteTournament", key, func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return operations.RunInTx(s.runner, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			if err := s.repo.Delete(ctx, db, key); err != nil {
				if errors.Is(err, tournamentdb.ErrNotFound) {
					return results.FailureResult[bool, error](err), nil
				}
				return results.OperationResult[bool, error]{}, fmt.Errorf("failed to delete tournament: %w", err)
			}
			return results.SuccessResult[bool, error](true), nil
		})
	}))
	return err
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
