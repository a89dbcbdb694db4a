package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new score repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// ListByTournament returns every stored score for a tournament ordered by golfer.
func (r *Impl) ListByTournament(ctx context.Context, db bun.IDB, tournamentKey string) ([]Score, error) {
	db = r.resolveDB(db)
	var scores []Score
	err := db.NewSelect().
		Model(&scores).
		Where("tournament_key = ?", tournamentKey).
		Order("golfer_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores for tournament %s: %w", tournamentKey, err)
	}
	return scores, nil
}

// Get returns one golfer's score.
func (r *Impl) Get(ctx context.Context, db bun.IDB, tournamentKey, golferName string) (*Score, error) {
	db = r.resolveDB(db)
	score := new(Score)
	err := db.NewSelect().
		Model(score).
		Where("tournament_key = ?", tournamentKey).
		Where("golfer_name = ?", golferName).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}
	return score, nil
}

// Upsert replaces a golfer's stored score. Every column is overwritten so a
// manual edit that clears a round really clears it.
func (r *Impl) Upsert(ctx context.Context, db bun.IDB, score *Score) error {
	db = r.resolveDB(db)
	score.UpdatedAt = time.Now().UTC()
	if _, err := upsertQuery(db, score).Exec(ctx); err != nil {
		return fmt.Errorf("failed to upsert score: %w", err)
	}
	return nil
}

// UpsertBatch replaces several scores with one INSERT ... ON CONFLICT.
func (r *Impl) UpsertBatch(ctx context.Context, db bun.IDB, scores []Score) error {
	if len(scores) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	now := time.Now().UTC()
	for i := range scores {
		scores[i].UpdatedAt = now
	}
	if _, err := upsertQuery(db, &scores).Exec(ctx); err != nil {
		return fmt.Errorf("failed to upsert %d scores: %w", len(scores), err)
	}
	return nil
}

func upsertQuery(db bun.IDB, model any) *bun.InsertQuery {
	return db.NewInsert().
		Model(model).
		On("CONFLICT (tournament_key, golfer_name) DO UPDATE").
		Set("rounds = EXCLUDED.rounds").
		Set("made_cut = EXCLUDED.made_cut").
		Set("thru = EXCLUDED.thru").
		Set("current_round = EXCLUDED.current_round").
		Set("source = EXCLUDED.source").
		Set("updated_at = EXCLUDED.updated_at")
}

// Delete removes one golfer's score.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, tournamentKey, golferName string) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Score)(nil)).
		Where("tournament_key = ?", tournamentKey).
		Where("golfer_name = ?", golferName).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
