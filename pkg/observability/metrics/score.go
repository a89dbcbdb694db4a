package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// ScoreMetrics adds live ingestion counters to the operation metrics.
type ScoreMetrics interface {
	OperationMetrics
	RecordIngestion(ctx context.Context, tournamentKey string, matched, unmatched, ambiguous, duplicates int)
	RecordLiveFetchRejected(ctx context.Context, tournamentKey string)
}

type prometheusScoreMetrics struct {
	OperationMetrics
	ingested *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewScoreMetrics registers the score subsystem on reg.
func NewScoreMetrics(reg prometheus.Registerer) ScoreMetrics {
	m := &prometheusScoreMetrics{
		OperationMetrics: NewOperationMetrics(reg, "score"),
		ingested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "score",
			Name:      "ingested_rows_total",
			Help:      "Live feed rows processed, by match outcome.",
		}, []string{"tournament", "outcome"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "score",
			Name:      "live_fetch_rejected_total",
			Help:      "Live refresh triggers rejected because a fetch was already in flight.",
		}, []string{"tournament"}),
	}
	reg.MustRegister(m.ingested, m.rejected)
	return m
}

func (m *prometheusScoreMetrics) RecordIngestion(_ context.Context, tournamentKey string, matched, unmatched, ambiguous, duplicates int) {
	m.ingested.WithLabelValues(tournamentKey, "matched").Add(float64(matched))
	m.ingested.WithLabelValues(tournamentKey, "unmatched").Add(float64(unmatched))
	m.ingested.WithLabelValues(tournamentKey, "ambiguous").Add(float64(ambiguous))
	m.ingested.WithLabelValues(tournamentKey, "duplicate").Add(float64(duplicates))
}

func (m *prometheusScoreMetrics) RecordLiveFetchRejected(_ context.Context, tournamentKey string) {
	m.rejected.WithLabelValues(tournamentKey).Inc()
}

type noopScoreMetrics struct {
	noopOperationMetrics
}

// NewNoopScoreMetrics returns score metrics that discard everything.
func NewNoopScoreMetrics() ScoreMetrics { return noopScoreMetrics{} }

func (noopScoreMetrics) RecordIngestion(context.Context, string, int, int, int, int) {}
func (noopScoreMetrics) RecordLiveFetchRejected(context.Context, string)             {}
