package tournamentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a tournament is not found.
var ErrNotFound = errors.New("tournament not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new tournament repository.
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

// GetByKey retrieves a tournament by its key.
func (r *Impl) GetByKey(ctx context.Context, db bun.IDB, key string) (*Tournament, error) {
	db = r.resolveDB(db)
	tournament := new(Tournament)
	err := db.NewSelect().
		Model(tournament).
		Where("key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tournament by key: %w", err)
	}
	return tournament, nil
}

// List returns all tournaments, newest first.
func (r *Impl) List(ctx context.Context, db bun.IDB) ([]Tournament, error) {
	db = r.resolveDB(db)
	var tournaments []Tournament
	err := db.NewSelect().
		Model(&tournaments).
		Order("created_at DESC", "key ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

// Upsert creates a tournament or updates its descriptive fields.
func (r *Impl) Upsert(ctx context.Context, db bun.IDB, tournament *Tournament) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if tournament.CreatedAt.IsZero() {
		tournament.CreatedAt = now
	}
	tournament.UpdatedAt = now
	if tournament.Golfers == nil {
		tournament.Golfers = []pooltypes.Golfer{}
	}
	if tournament.Tiers == nil {
		tournament.Tiers = pooltypes.Tiers{}
	}
	_, err := db.NewInsert().
		Model(tournament).
		On("CONFLICT (key) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("logo_url = EXCLUDED.logo_url").
		Set("par = EXCLUDED.par").
		Set("live_id = EXCLUDED.live_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert tournament: %w", err)
	}
	return nil
}

// ReplaceRoster stores a new roster and its tier split.
func (r *Impl) ReplaceRoster(ctx context.Context, db bun.IDB, key string, golfers []pooltypes.Golfer, tiers pooltypes.Tiers) error {
	db = r.resolveDB(db)
	row := &Tournament{
		Key:       key,
		Golfers:   golfers,
		Tiers:     tiers,
		UpdatedAt: time.Now().UTC(),
	}
	result, err := db.NewUpdate().
		Model(row).
		Column("golfers", "tiers", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to replace roster: %w", err)
	}
	return expectOneRow(result)
}

// SetPicksLock sets or clears the picks deadline.
func (r *Impl) SetPicksLock(ctx context.Context, db bun.IDB, key string, lockAt *time.Time) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Tournament)(nil)).
		Set("picks_lock_at = ?", lockAt).
		Set("updated_at = ?", time.Now().UTC()).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set picks lock: %w", err)
	}
	return expectOneRow(result)
}

// Delete removes a tournament. Teams and scores go with it via ON DELETE CASCADE.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, key string) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Tournament)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
