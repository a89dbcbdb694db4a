package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// LeaderboardMetrics adds standings gauges to the operation metrics.
type LeaderboardMetrics interface {
	OperationMetrics
	SetLeaderScore(ctx context.Context, tournamentKey string, total int)
	SetRankedTeams(ctx context.Context, tournamentKey string, n int)
}

type prometheusLeaderboardMetrics struct {
	OperationMetrics
	leader *prometheus.GaugeVec
	teams  *prometheus.GaugeVec
}

// NewLeaderboardMetrics registers the leaderboard subsystem on reg.
func NewLeaderboardMetrics(reg prometheus.Registerer) LeaderboardMetrics {
	m := &prometheusLeaderboardMetrics{
		OperationMetrics: NewOperationMetrics(reg, "leaderboard"),
		leader: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "leader_total_to_par",
			Help:      "Best-four total of the team currently in first place.",
		}, []string{"tournament"}),
		teams: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "ranked_teams",
			Help:      "Number of teams in the latest standings.",
		}, []string{"tournament"}),
	}
	reg.MustRegister(m.leader, m.teams)
	return m
}

func (m *prometheusLeaderboardMetrics) SetLeaderScore(_ context.Context, tournamentKey string, total int) {
	m.leader.WithLabelValues(tournamentKey).Set(float64(total))
}

func (m *prometheusLeaderboardMetrics) SetRankedTeams(_ context.Context, tournamentKey string, n int) {
	m.teams.WithLabelValues(tournamentKey).Set(float64(n))
}

type noopLeaderboardMetrics struct {
	noopOperationMetrics
}

// NewNoopLeaderboardMetrics returns leaderboard metrics that discard everything.
func NewNoopLeaderboardMetrics() LeaderboardMetrics { return noopLeaderboardMetrics{} }

func (noopLeaderboardMetrics) SetLeaderScore(context.Context, string, int) {}
func (noopLeaderboardMetrics) SetRankedTeams(context.Context, string, int) {}
