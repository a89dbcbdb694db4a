package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/majors-pool/app/migrations"
	scorequeue "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/queue"
	"github.com/Black-And-White-Club/majors-pool/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load configuration for database connection ONLY
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Database connection using pgdriver
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	migrators := migrations.Migrators(db)

	cliApp := &cli.App{
		Name:  "bun",
		Usage: "majors pool database tool",
		Commands: []*cli.Command{
			newDBCommand(db, cfg.Postgres.DSN, migrators),
		},
	}

	// flag.Parse consumed -config; hand the rest to the CLI.
	args := append([]string{os.Args[0]}, flag.Args()...)
	if err := cliApp.Run(args); err != nil {
		log.Fatal(err)
	}
}

func findMigrator(migrators []migrations.NamedMigrator, name string) (migrations.NamedMigrator, error) {
	for _, m := range migrators {
		if m.Name == name {
			return m, nil
		}
	}
	return migrations.NamedMigrator{}, fmt.Errorf("invalid module name: %s", name)
}

func newDBCommand(db *bun.DB, dsn string, migrators []migrations.NamedMigrator) *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return migrators[0].Migrator.Init(c.Context)
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database and the job queue schema",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "skip-queue", Usage: "do not migrate the River job tables"},
				},
				Action: func(c *cli.Context) error {
					logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
					if err := migrations.Up(c.Context, db, logger); err != nil {
						return err
					}
					if c.Bool("skip-queue") {
						return nil
					}
					if err := scorequeue.Migrate(c.Context, dsn); err != nil {
						return err
					}
					fmt.Println("Migrated job queue tables")
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group of every module",
				Action: func(c *cli.Context) error {
					// Dependents first.
					for i := len(migrators) - 1; i >= 0; i-- {
						m := migrators[i]
						group, err := m.Migrator.Rollback(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", m.Name)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", m.Name, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "create_go",
				Usage: "create Go migration: create_go <module> <name...>",
				Action: func(c *cli.Context) error {
					m, err := findMigrator(migrators, c.Args().First())
					if err != nil {
						return err
					}

					name := strings.Join(c.Args().Tail(), "_")
					mf, err := m.Migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration for module %s: %s (%s)\n", m.Name, mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return printStatus(c.Context, migrators)
				},
			},
		},
	}
}

func printStatus(ctx context.Context, migrators []migrations.NamedMigrator) error {
	for _, m := range migrators {
		ms, err := m.Migrator.MigrationsWithStatus(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Migrations for module: %s\n", m.Name)
		fmt.Printf("  %s\n", ms)
		fmt.Printf("  Applied: %s\n", ms.Applied())
		fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
	}
	return nil
}
