package tournament

import (
	"context"
	"net/http"
	"sync"

	tournamentservice "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/application"
	tournamenthandlers "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/handlers"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the tournament module.
type Module struct {
	Repository        tournamentdb.Repository
	TournamentService tournamentservice.Service
	observability     observability.Observability
}

// NewTournamentModule creates the tournament module and registers its routes.
// requireAdmin guards every write route.
func NewTournamentModule(
	ctx context.Context,
	obs observability.Observability,
	httpRouter chi.Router,
	requireAdmin func(http.Handler) http.Handler,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "tournament.NewTournamentModule initializing")

	repo := tournamentdb.NewRepository(db)
	service := tournamentservice.NewTournamentService(
		repo,
		logger,
		metrics.NewOperationMetrics(obs.Registry, "tournament"),
		tracer,
		db,
	)
	handlers := tournamenthandlers.NewTournamentHandlers(service, logger, tracer)

	if httpRouter != nil {
		httpRouter.Get("/api/tournaments", handlers.HandleListTournaments)
		httpRouter.Get("/api/tournaments/{key}", handlers.HandleGetTournament)

		httpRouter.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Put("/api/tournaments/{key}", handlers.HandleUpsertTournament)
			r.Put("/api/tournaments/{key}/lock", handlers.HandleSetPicksLock)
			r.Delete("/api/tournaments/{key}", handlers.HandleDeleteTournament)
			r.Post("/api/tournaments/{key}/roster", handlers.HandleUploadRoster)
		})
	}

	return &Module{
		Repository:        repo,
		TournamentService: service,
		observability:     obs,
	}, nil
}

// Run blocks until ctx is done; the module only serves HTTP.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	<-ctx.Done()
}

// Close shuts down the tournament module.
func (m *Module) Close() error {
	m.observability.Logger.Info("Tournament module stopped")
	return nil
}
