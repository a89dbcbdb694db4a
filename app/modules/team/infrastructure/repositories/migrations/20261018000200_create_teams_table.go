package teammigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating teams table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS teams (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					tournament_key VARCHAR(64) NOT NULL REFERENCES tournaments(key) ON DELETE CASCADE,
					name VARCHAR(100) NOT NULL,
					picks JSONB NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_teams_tournament_key ON teams(tournament_key);
			`); err != nil {
				return fmt.Errorf("failed to create teams table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping teams table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS teams;`); err != nil {
				return fmt.Errorf("failed to drop teams table: %w", err)
			}
			return nil
		})
	})
}
