package scoreservice

import (
	"context"
	"errors"
	"fmt"

	scoredomain "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain"
	scoreevents "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain/events"
	scoredb "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/repositories"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/Black-And-White-Club/majors-pool/pkg/operations"
	"github.com/Black-And-White-Club/majors-pool/pkg/results"
	"github.com/uptrace/bun"
)

// RefreshLive fetches the live leaderboard for a tournament, matches it
// against the roster and applies every resolved golfer's score in one
// transaction. Only one refresh per tournament runs at a time; a concurrent
// call fails with ErrFetchInProgress.
func (s *ScoreService) RefreshLive(ctx context.Context, tournamentKey string) (*RefreshResult, error) {
	if !s.tryBeginFetch(tournamentKey) {
		if s.metrics != nil {
			s.metrics.RecordLiveFetchRejected(ctx, tournamentKey)
		}
		return nil, ErrFetchInProgress
	}
	defer s.endFetch(tournamentKey)

	result, err := operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "RefreshLive", tournamentKey, func(ctx context.Context) (results.OperationResult[*refreshOutcome, error], error) {
		return s.refreshLiveLogic(ctx, tournamentKey)
	}))
	if err != nil {
		return nil, err
	}
	if result.Applied > 0 {
		golfers := make([]string, 0, result.Applied)
		for _, u := range result.updates {
			golfers = append(golfers, u.GolferName)
		}
		s.publishApplied(ctx, tournamentKey, scoreevents.SourceLive, golfers)
	}
	return &result.RefreshResult, nil
}

type refreshOutcome struct {
	RefreshResult
	updates []scoredb.Score
}

func (s *ScoreService) refreshLiveLogic(ctx context.Context, tournamentKey string) (results.OperationResult[*refreshOutcome, error], error) {
	tournament, err := s.tournaments.GetByKey(ctx, nil, tournamentKey)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			return results.FailureResult[*refreshOutcome, error](err), nil
		}
		return results.OperationResult[*refreshOutcome, error]{}, fmt.Errorf("failed to load tournament: %w", err)
	}
	if tournament.LiveID == nil || *tournament.LiveID == "" {
		return results.FailureResult[*refreshOutcome, error](ErrNoLiveID), nil
	}
	if len(tournament.Golfers) == 0 {
		return results.FailureResult[*refreshOutcome, error](ErrEmptyRoster), nil
	}

	payload, err := s.feed.FetchLeaderboard(ctx, *tournament.LiveID)
	if err != nil {
		return results.OperationResult[*refreshOutcome, error]{}, fmt.Errorf("failed to fetch live leaderboard: %w", err)
	}

	ingested := scoredomain.Ingest(*payload, tournament.Golfers, tournament.Par)
	report := ingested.Report
	if s.metrics != nil {
		s.metrics.RecordIngestion(ctx, tournamentKey, report.Matched, report.Unmatched, report.Ambiguous, report.Duplicates)
	}
	for _, u := range report.Unresolved {
		s.logger.InfoContext(ctx, "Live row not applied",
			attr.ExtractCorrelationID(ctx),
			attr.TournamentKey(tournamentKey),
			attr.String("api_name", u.APIName),
			attr.String("reason", u.Reason),
			attr.Any("candidates", u.Candidates),
			attr.Any("suggestions", u.Suggestions),
		)
	}

	for _, d := range report.DuplicateRows {
		s.logger.WarnContext(ctx, "Duplicate live row dropped",
			attr.ExtractCorrelationID(ctx),
			attr.TournamentKey(tournamentKey),
			attr.String("api_name", d.APIName),
			attr.String("golfer", d.Golfer),
		)
	}

	rows := make([]scoredb.Score, 0, len(ingested.Updates))
	for _, rec := range ingested.Updates {
		rows = append(rows, scoredb.FromRecord(tournamentKey, rec, scoredb.SourceLive))
	}

	applyTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		if err := s.repo.UpsertBatch(ctx, db, rows); err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		return results.SuccessResult[bool, error](true), nil
	}
	if _, err := operations.RunInTx(s.runner, ctx, applyTx); err != nil {
		return results.OperationResult[*refreshOutcome, error]{}, fmt.Errorf("failed to apply %d live scores: %w", len(rows), err)
	}

	return results.SuccessResult[*refreshOutcome, error](&refreshOutcome{
		RefreshResult: RefreshResult{
			TournamentName:   payload.TournamentName,
			TournamentStatus: payload.TournamentStatus,
			Applied:          len(rows),
			Report:           report,
		},
		updates: rows,
	}), nil
}

// RefreshAllLive refreshes every tournament that has a live id. Tournaments
// already being refreshed are skipped. It returns how many refreshes succeeded.
func (s *ScoreService) RefreshAllLive(ctx context.Context) (int, error) {
	tournaments, err := s.tournaments.List(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to list tournaments: %w", err)
	}

	var (
		refreshed int
		errs      []error
	)
	for _, t := range tournaments {
		if t.LiveID == nil || *t.LiveID == "" || len(t.Golfers) == 0 {
			continue
		}
		if _, err := s.RefreshLive(ctx, t.Key); err != nil {
			if errors.Is(err, ErrFetchInProgress) {
				continue
			}
			errs = append(errs, fmt.Errorf("%s: %w", t.Key, err))
			continue
		}
		refreshed++
	}
	return refreshed, errors.Join(errs...)
}
