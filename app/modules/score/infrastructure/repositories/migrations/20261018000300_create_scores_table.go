package scoremigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scores table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS scores (
					tournament_key VARCHAR(64) NOT NULL REFERENCES tournaments(key) ON DELETE CASCADE,
					golfer_name TEXT NOT NULL,
					rounds JSONB NOT NULL DEFAULT '[null,null,null,null]',
					made_cut BOOLEAN NOT NULL DEFAULT TRUE,
					thru INTEGER,
					current_round INTEGER,
					source VARCHAR(16) NOT NULL DEFAULT 'manual',
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (tournament_key, golfer_name)
				);
			`); err != nil {
				return fmt.Errorf("failed to create scores table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scores table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS scores;`); err != nil {
				return fmt.Errorf("failed to drop scores table: %w", err)
			}
			return nil
		})
	})
}
