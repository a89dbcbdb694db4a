package teamdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a team is not found.
var ErrNotFound = errors.New("team not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new team repository.
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

// ListByTournament returns a tournament's teams in submission order.
func (r *Impl) ListByTournament(ctx context.Context, db bun.IDB, tournamentKey string) ([]Team, error) {
	db = r.resolveDB(db)
	var teams []Team
	err := db.NewSelect().
		Model(&teams).
		Where("tournament_key = ?", tournamentKey).
		Order("created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %s: %w", tournamentKey, err)
	}
	return teams, nil
}

// Insert stores a new team, assigning an ID when it has none.
func (r *Impl) Insert(ctx context.Context, db bun.IDB, team *Team) error {
	db = r.resolveDB(db)
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(team).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

// LockTournament takes a transaction-scoped advisory lock keyed by the
// tournament so concurrent submissions cannot both pass the duplicate check.
// Outside a transaction the lock is released immediately.
func (r *Impl) LockTournament(ctx context.Context, db bun.IDB, tournamentKey string) error {
	db = r.resolveDB(db)
	if _, err := db.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(?))", "teams:"+tournamentKey); err != nil {
		return fmt.Errorf("failed to lock tournament %s: %w", tournamentKey, err)
	}
	return nil
}

// Delete removes a team from a tournament.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, tournamentKey string, id uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Team)(nil)).
		Where("tournament_key = ?", tournamentKey).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
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
