package leaderboardrouter

import (
	"context"
	"log/slog"
	"time"

	leaderboardhandlers "github.com/Black-And-White-Club/majors-pool/app/modules/leaderboard/infrastructure/handlers"
	scoreevents "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain/events"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardRouter consumes score events and keeps standings metrics fresh.
type LeaderboardRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	tracer         trace.Tracer
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewLeaderboardRouter creates a router over subscriber. A nil registry
// disables router metrics.
func NewLeaderboardRouter(
	logger *slog.Logger,
	subscriber message.Subscriber,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
) (*LeaderboardRouter, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, err
	}

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "majors_pool", "leaderboard")
		metricsBuilder = &builder
	}

	return &LeaderboardRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		tracer:         tracer,
		metricsBuilder: metricsBuilder,
	}, nil
}

// Configure sets up the middlewares and registers the event handlers.
func (r *LeaderboardRouter) Configure(ctx context.Context, handlers leaderboardhandlers.Handlers) {
	if r.metricsBuilder != nil {
		r.logger.InfoContext(ctx, "Adding Prometheus router metrics middleware for Leaderboard")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		correlationContext,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			Logger:          watermill.NewSlogLogger(r.logger),
		}.Middleware,
		middleware.Recoverer,
		traceHandler(r.tracer),
	)

	r.Router.AddNoPublisherHandler(
		"leaderboard."+scoreevents.ScoresAppliedV1,
		scoreevents.ScoresAppliedV1,
		r.subscriber,
		handlers.HandleScoresApplied,
	)
	r.logger.InfoContext(ctx, "Registered Leaderboard event handlers", attr.String("topic", scoreevents.ScoresAppliedV1))
}

// Run blocks until ctx is cancelled or the router is closed.
func (r *LeaderboardRouter) Run(ctx context.Context) error {
	return r.Router.Run(ctx)
}

// Close stops the router.
func (r *LeaderboardRouter) Close() error {
	return r.Router.Close()
}

// correlationContext copies the message correlation id into the context so
// service logs carry it.
func correlationContext(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		if id := middleware.MessageCorrelationID(msg); id != "" {
			msg.SetContext(attr.WithCorrelationID(msg.Context(), id))
		}
		return h(msg)
	}
}

// traceHandler wraps each message in a span named after the handler.
func traceHandler(tracer trace.Tracer) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			ctx, span := tracer.Start(msg.Context(), message.HandlerNameFromCtx(msg.Context()),
				trace.WithAttributes(attribute.String("message.uuid", msg.UUID)),
			)
			defer span.End()
			msg.SetContext(ctx)

			out, err := h(msg)
			if err != nil {
				span.RecordError(err)
			}
			return out, err
		}
	}
}
