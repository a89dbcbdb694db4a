// Package migrations runs every module's schema migrations in dependency order.
package migrations

import (
	"context"
	"fmt"
	"log/slog"

	scoremigrations "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/repositories/migrations"
	teammigrations "github.com/Black-And-White-Club/majors-pool/app/modules/team/infrastructure/repositories/migrations"
	tournamentmigrations "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Module pairs a module name with its migration collection.
type Module struct {
	Name       string
	Migrations *migrate.Migrations
}

// Modules lists migration collections in foreign key order: teams and scores
// reference tournaments.
func Modules() []Module {
	return []Module{
		{"tournament", tournamentmigrations.Migrations},
		{"team", teammigrations.Migrations},
		{"score", scoremigrations.Migrations},
	}
}

// Migrators builds one migrator per module, in Modules order.
func Migrators(db *bun.DB) []NamedMigrator {
	mods := Modules()
	out := make([]NamedMigrator, 0, len(mods))
	for _, m := range mods {
		out = append(out, NamedMigrator{Name: m.Name, Migrator: migrate.NewMigrator(db, m.Migrations)})
	}
	return out
}

// NamedMigrator is a migrator labelled with its module.
type NamedMigrator struct {
	Name     string
	Migrator *migrate.Migrator
}

// Up creates the migration tables when missing and applies every pending
// migration.
func Up(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	migrators := Migrators(db)

	// All modules share bun's migration tables; initializing once is enough.
	if err := migrators[0].Migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	for _, m := range migrators {
		group, err := m.Migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", m.Name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", slog.String("module", m.Name))
		} else {
			logger.InfoContext(ctx, "Migrated module",
				slog.String("module", m.Name),
				slog.String("group", group.String()),
			)
		}
	}
	return nil
}
