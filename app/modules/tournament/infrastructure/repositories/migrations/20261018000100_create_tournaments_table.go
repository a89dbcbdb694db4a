package tournamentmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating tournaments table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS tournaments (
					key VARCHAR(64) PRIMARY KEY,
					name VARCHAR(200) NOT NULL,
					logo_url TEXT,
					par INTEGER NOT NULL DEFAULT 72 CHECK (par BETWEEN 68 AND 76),
					golfers JSONB NOT NULL DEFAULT '[]',
					tiers JSONB NOT NULL DEFAULT '{}',
					live_id VARCHAR(64),
					picks_lock_at TIMESTAMPTZ,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create tournaments table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping tournaments table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS tournaments;`); err != nil {
				return fmt.Errorf("failed to drop tournaments table: %w", err)
			}
			return nil
		})
	})
}
