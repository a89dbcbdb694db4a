package leaderboardservice

import (
	"context"
	"errors"
	"fmt"

	leaderboarddomain "github.com/Black-And-White-Club/majors-pool/app/modules/leaderboard/domain"
	scoredb "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/repositories"
	teamdb "github.com/Black-And-White-Club/majors-pool/app/modules/team/infrastructure/repositories"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/Black-And-White-Club/majors-pool/pkg/operations"
	"github.com/Black-And-White-Club/majors-pool/pkg/results"
	"github.com/uptrace/bun"
)

// GetStandings ranks every team of a tournament against the stored scores.
func (s *LeaderboardService) GetStandings(ctx context.Context, tournamentKey string) (*StandingsView, error) {
	return operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "GetStandings", tournamentKey, func(ctx context.Context) (results.OperationResult[*StandingsView, error], error) {
		return s.standings(ctx, tournamentKey)
	}))
}

// StandingsChart renders the top of the standings as a PNG bar chart.
func (s *LeaderboardService) StandingsChart(ctx context.Context, tournamentKey string) (*Chart, error) {
	return operations.Unwrap(operations.WithTelemetry(s.runner, ctx, "StandingsChart", tournamentKey, func(ctx context.Context) (results.OperationResult[*Chart, error], error) {
		res, err := s.standings(ctx, tournamentKey)
		if err != nil || res.IsFailure() {
			return results.OperationResult[*Chart, error]{Failure: res.Failure}, err
		}
		view := *res.Success
		png, err := GenerateStandingsChart(view, s.palette, chartLimit)
		if err != nil {
			return results.OperationResult[*Chart, error]{}, fmt.Errorf("failed to render standings chart: %w", err)
		}
		return results.SuccessResult[*Chart, error](&Chart{PNG: png, Version: view.Version}), nil
	}))
}

// RecordStandings recomputes standings and publishes the leader to metrics
// and logs.
func (s *LeaderboardService) RecordStandings(ctx context.Context, tournamentKey string) error {
	view, err := s.GetStandings(ctx, tournamentKey)
	if err != nil {
		return err
	}

	s.metrics.SetRankedTeams(ctx, tournamentKey, len(view.Standings))
	if len(view.Standings) == 0 {
		return nil
	}

	leader := view.Standings[0]
	s.metrics.SetLeaderScore(ctx, tournamentKey, leader.TotalScore)
	s.logger.InfoContext(ctx, "Standings recomputed",
		attr.ExtractCorrelationID(ctx),
		attr.TournamentKey(tournamentKey),
		attr.String("leader", leader.TeamName),
		attr.Int("leader_total", leader.TotalScore),
		attr.Bool("leader_tied", leader.Tied),
		attr.Int("teams", len(view.Standings)),
		attr.String("version", view.Version),
	)
	return nil
}

// standings loads the tournament, its teams and its scores inside one
// transaction and ranks them.
func (s *LeaderboardService) standings(ctx context.Context, tournamentKey string) (results.OperationResult[*StandingsView, error], error) {
	return operations.RunInTx(s.runner, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*StandingsView, error], error) {
		tournament, err := s.tournaments.GetByKey(ctx, db, tournamentKey)
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return results.FailureResult[*StandingsView, error](err), nil
			}
			return results.OperationResult[*StandingsView, error]{}, fmt.Errorf("failed to load tournament: %w", err)
		}

		teamRows, err := s.teams.ListByTournament(ctx, db, tournamentKey)
		if err != nil {
			return results.OperationResult[*StandingsView, error]{}, fmt.Errorf("failed to list teams: %w", err)
		}
		scoreRows, err := s.scores.ListByTournament(ctx, db, tournamentKey)
		if err != nil {
			return results.OperationResult[*StandingsView, error]{}, fmt.Errorf("failed to list scores: %w", err)
		}

		teams := teamdb.Values(teamRows)
		scores := scoredb.Records(scoreRows)

		return results.SuccessResult[*StandingsView, error](&StandingsView{
			TournamentKey:  tournament.Key,
			TournamentName: tournament.Name,
			Par:            tournament.Par,
			Version:        leaderboarddomain.SnapshotVersion(tournament.Par, teams, scores),
			ComputedAt:     s.now().UTC(),
			Standings:      leaderboarddomain.Rank(teams, scores, tournament.Par),
		}), nil
	})
}
