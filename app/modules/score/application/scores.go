package scoreservice

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	scoredomain "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain"
	scoreevents "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain/events"
	scoredb "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/repositories"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/eventbus"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/Black-And-White-Club/majors-pool/pkg/operations"
	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/Black-And-White-Club/majors-pool/pkg/results"
	"github.com/uptrace/bun"
)

const (
	minStrokes = 1
	maxStrokes = 150
)

// ListScores returns every stored score for a tournament with its scoring
// line computed against the tournament par.
func (s *ScoreService) ListScores(ctx context.Context, tournamentKey string) ([]ScoreView, error) {
	return operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "ListScores", tournamentKey, func(ctx context.Context) (results.OperationResult[[]ScoreView, error], error) {
		tournament, err := s.tournaments.GetByKey(ctx, nil, tournamentKey)
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return results.FailureResult[[]ScoreView, error](err), nil
			}
			return results.OperationResult[[]ScoreView, error]{}, fmt.Errorf("failed to load tournament: %w", err)
		}
		rows, err := s.repo.ListByTournament(ctx, nil, tournamentKey)
		if err != nil {
			return results.OperationResult[[]ScoreView, error]{}, fmt.Errorf("failed to list scores: %w", err)
		}
		views := make([]ScoreView, 0, len(rows))
		for i := range rows {
			views = append(views, toView(&rows[i], tournament.Par))
		}
		return results.SuccessResult[[]ScoreView, error](views), nil
	}))
}

// UpsertScore stores a manual score entry, replacing whatever was stored for
// the golfer.
func (s *ScoreService) UpsertScore(ctx context.Context, tournamentKey string, req ManualScoreRequest) (*ScoreView, error) {
	upsertTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*ScoreView, error], error) {
		return s.upsertScoreLogic(ctx, db, tournamentKey, req)
	}

	view, err := operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "UpsertScore", tournamentKey, func(ctx context.Context) (results.OperationResult[*ScoreView, error], error) {
		return operations.RunInTx(s.runner, ctx, upsertTx)
	}))
	if err != nil {
		return nil, err
	}
	s.publishApplied(ctx, tournamentKey, scoreevents.SourceManual, []string{view.GolferName})
	return view, nil
}

func (s *ScoreService) upsertScoreLogic(ctx context.Context, db bun.IDB, tournamentKey string, req ManualScoreRequest) (results.OperationResult[*ScoreView, error], error) {
	if err := validateManual(req); err != nil {
		return results.FailureResult[*ScoreView, error](err), nil
	}

	tournament, err := s.tournaments.GetByKey(ctx, db, tournamentKey)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			return results.FailureResult[*ScoreView, error](err), nil
		}
		return results.OperationResult[*ScoreView, error]{}, fmt.Errorf("failed to load tournament: %w", err)
	}

	golfer := strings.Join(strings.Fields(req.GolferName), " ")
	if !onRoster(tournament.Golfers, golfer) {
		return results.FailureResult[*ScoreView, error](fmt.Errorf("%w: %q", ErrGolferNotOnRoster, golfer)), nil
	}

	madeCut := true
	if req.MadeCut != nil {
		madeCut = *req.MadeCut
	}
	row := scoredb.FromRecord(tournamentKey, pooltypes.ScoreRecord{
		GolferName:   golfer,
		Rounds:       req.Rounds,
		MadeCut:      madeCut,
		Thru:         req.Thru,
		CurrentRound: req.CurrentRound,
	}, scoredb.SourceManual)

	if err := s.repo.Upsert(ctx, db, &row); err != nil {
		return results.OperationResult[*ScoreView, error]{}, fmt.Errorf("failed to upsert score: %w", err)
	}

	view := toView(&row, tournament.Par)
	return results.SuccessResult[*ScoreView, error](&view), nil
}

// DeleteScore clears a golfer's stored score.
func (s *ScoreService) DeleteScore(ctx context.Context, tournamentKey, golferName string) error {
	_, err := operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "DeleteScore", tournamentKey, func(ctx context.Context) (results.OperationResult[bool, error], error) {
		if err := s.repo.Delete(ctx, nil, tournamentKey, golferName); err != nil {
			if errors.Is(err, scoredb.ErrNotFound) {
				return results.FailureResult[bool, error](err), nil
			}
			return results.OperationResult[bool, error]{}, fmt.Errorf("failed to delete score: %w", err)
		}
		return results.SuccessResult[bool, error](true), nil
	}))
	if err != nil {
		return err
	}
	s.publishApplied(ctx, tournamentKey, scoreevents.SourceManual, []string{golferName})
	return nil
}

func validateManual(req ManualScoreRequest) error {
	if strings.TrimSpace(req.GolferName) == "" {
		return fmt.Errorf("%w: golfer name is required", ErrInvalidScore)
	}
	for i, strokes := range req.Rounds {
		if strokes != nil && (*strokes < minStrokes || *strokes > maxStrokes) {
			return fmt.Errorf("%w: round %d strokes %d", ErrInvalidScore, i+1, *strokes)
		}
	}
	if req.Thru != nil && !scoredomain.ValidThru(*req.Thru) {
		return fmt.Errorf("%w: thru %d", ErrInvalidScore, *req.Thru)
	}
	return nil
}

func onRoster(roster []pooltypes.Golfer, name string) bool {
	return slices.ContainsFunc(roster, func(g pooltypes.Golfer) bool { return g.Name == name })
}

func toView(row *scoredb.Score, par int) ScoreView {
	rec := row.Record()
	score := scoredomain.ScoreOf(rec, par)
	return ScoreView{
		ScoreRecord: rec,
		Score:       score,
		Progress:    scoredomain.LiveProgress(score, rec.Thru, rec.CurrentRound),
		Source:      row.Source,
		UpdatedAt:   row.UpdatedAt,
	}
}

// publishApplied emits scores.applied.v1 after a commit. Publishing is best
// effort; standings are recomputed on read regardless.
func (s *ScoreService) publishApplied(ctx context.Context, tournamentKey, source string, golfers []string) {
	if s.publisher == nil {
		return
	}
	payload := scoreevents.ScoresAppliedPayloadV1{
		TournamentKey: tournamentKey,
		Source:        source,
		Golfers:       golfers,
		AppliedAt:     time.Now().UTC(),
	}
	if err := eventbus.Publish(ctx, s.publisher, scoreevents.ScoresAppliedV1, tournamentKey, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish scores applied event",
			attr.ExtractCorrelationID(ctx),
			attr.TournamentKey(tournamentKey),
			attr.Error(err),
		)
	}
}
