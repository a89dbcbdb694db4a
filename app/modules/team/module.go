package team

import (
	"context"
	"net/http"
	"sync"

	teamservice "github.com/Black-And-White-Club/majors-pool/app/modules/team/application"
	teamhandlers "github.com/Black-And-White-Club/majors-pool/app/modules/team/infrastructure/handlers"
	teamdb "github.com/Black-And-White-Club/majors-pool/app/modules/team/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the team module.
type Module struct {
	Repository    teamdb.Repository
	TeamService   teamservice.Service
	observability observability.Observability
}

// NewTeamModule creates the team module. Submitting a team is open to
// players; deleting one requires admin.
func NewTeamModule(
	ctx context.Context,
	obs observability.Observability,
	httpRouter chi.Router,
	requireAdmin func(http.Handler) http.Handler,
	tournaments teamservice.TournamentLookup,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "team.NewTeamModule initializing")

	repo := teamdb.NewRepository(db)
	service := teamservice.NewTeamService(
		repo,
		tournaments,
		logger,
		metrics.NewOperationMetrics(obs.Registry, "team"),
		tracer,
		db,
	)
	handlers := teamhandlers.NewTeamHandlers(service, logger, tracer)

	if httpRouter != nil {
		httpRouter.Get("/api/tournaments/{key}/teams", handlers.HandleListTeams)
		httpRouter.Post("/api/tournaments/{key}/teams", handlers.HandleSubmitTeam)
		httpRouter.With(requireAdmin).Delete("/api/tournaments/{key}/teams/{id}", handlers.HandleDeleteTeam)
	}

	return &Module{
		Repository:    repo,
		TeamService:   service,
		observability: obs,
	}, nil
}

// Run blocks until ctx is done; the module only serves HTTP.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	<-ctx.Done()
}

// Close shuts down the team module.
func (m *Module) Close() error {
	m.observability.Logger.Info("Team module stopped")
	return nil
}
