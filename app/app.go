package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/majors-pool/app/modules/auth"
	"github.com/Black-And-White-Club/majors-pool/app/modules/leaderboard"
	"github.com/Black-And-White-Club/majors-pool/app/modules/score"
	"github.com/Black-And-White-Club/majors-pool/app/modules/team"
	"github.com/Black-And-White-Club/majors-pool/app/modules/tournament"
	"github.com/Black-And-White-Club/majors-pool/config"
	"github.com/Black-And-White-Club/majors-pool/pkg/eventbus"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const shutdownTimeout = 15 * time.Second

// Module is the lifecycle every module implements.
type Module interface {
	Run(ctx context.Context, wg *sync.WaitGroup)
	Close() error
}

// Modules holds every module of the application.
type Modules struct {
	AuthModule        *auth.Module
	TournamentModule  *tournament.Module
	TeamModule        *team.Module
	ScoreModule       *score.Module
	LeaderboardModule *leaderboard.Module
}

// App wires the database, event bus, HTTP server and modules together.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      *gochannel.GoChannel
	Router        *chi.Mux
	Modules       Modules

	server        *http.Server
	metricsServer *http.Server
	wg            sync.WaitGroup
}

// NewApp opens the database and builds every module.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      eventbus.NewGoChannelBus(obs.Logger),
	}
	if err := app.initialize(ctx); err != nil {
		app.EventBus.Close()
		db.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) initialize(ctx context.Context) error {
	cfg := app.Config
	obs := app.Observability

	app.Router = newRouter(obs.Logger, cfg.HTTP.AllowedOrigins)
	serveMetricsInline := cfg.Observability.MetricsAddress == ""
	registerOps(app.Router, app.DB, obs.Registry, serveMetricsInline)

	authModule, err := auth.NewModule(ctx, cfg, obs, app.Router)
	if err != nil {
		return fmt.Errorf("failed to initialize auth module: %w", err)
	}
	requireAdmin := authModule.RequireAdmin()

	tournamentModule, err := tournament.NewTournamentModule(ctx, obs, app.Router, requireAdmin, app.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize tournament module: %w", err)
	}

	teamModule, err := team.NewTeamModule(ctx, obs, app.Router, requireAdmin, tournamentModule.Repository, app.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize team module: %w", err)
	}

	scoreModule, err := score.NewScoreModule(ctx, cfg, obs, app.EventBus, app.Router, requireAdmin, tournamentModule.Repository, app.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize score module: %w", err)
	}

	leaderboardModule, err := leaderboard.NewLeaderboardModule(
		ctx,
		obs,
		app.EventBus,
		app.Router,
		tournamentModule.Repository,
		teamModule.Repository,
		scoreModule.Repository,
		app.DB,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}

	app.Modules = Modules{
		AuthModule:        authModule,
		TournamentModule:  tournamentModule,
		TeamModule:        teamModule,
		ScoreModule:       scoreModule,
		LeaderboardModule: leaderboardModule,
	}

	app.server = &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if !serveMetricsInline {
		app.metricsServer = newMetricsServer(cfg.Observability.MetricsAddress, obs.Registry)
	}
	return nil
}

func (app *App) modules() []Module {
	return []Module{
		app.Modules.AuthModule,
		app.Modules.TournamentModule,
		app.Modules.TeamModule,
		app.Modules.ScoreModule,
		app.Modules.LeaderboardModule,
	}
}

// Run starts every module and the HTTP servers, and blocks until ctx is done
// or a server fails.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	for _, m := range app.modules() {
		app.wg.Add(1)
		go m.Run(ctx, &app.wg)
	}

	errCh := make(chan error, 2)
	serve := func(srv *http.Server, name string) {
		logger.InfoContext(ctx, "HTTP server listening", attr.String("server", name), attr.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%s server: %w", name, err)
		}
	}
	go serve(app.server, "api")
	if app.metricsServer != nil {
		go serve(app.metricsServer, "metrics")
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Close shuts the servers down, stops every module and closes the database.
func (app *App) Close() error {
	logger := app.Observability.Logger
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if app.server != nil {
		if err := app.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("api server shutdown: %w", err))
		}
	}
	if app.metricsServer != nil {
		if err := app.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	for _, m := range app.modules() {
		if err := m.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("Timed out waiting for modules to stop")
	}

	if err := app.EventBus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("event bus close: %w", err))
	}
	if err := app.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}

	logger.Info("Application stopped")
	return errors.Join(errs...)
}
