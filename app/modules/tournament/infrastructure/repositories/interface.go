package tournamentdb

import (
	"context"
	"time"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/uptrace/bun"
)

// Repository defines the contract for tournament persistence.
type Repository interface {
	// GetByKey retrieves a tournament by its key.
	GetByKey(ctx context.Context, db bun.IDB, key string) (*Tournament, error)

	// List returns all tournaments, newest first.
	List(ctx context.Context, db bun.IDB) ([]Tournament, error)

	// Upsert creates a tournament or updates its descriptive fields. The
	// roster and tiers of an existing row are left alone.
	Upsert(ctx context.Context, db bun.IDB, tournament *Tournament) error

	// ReplaceRoster stores a new roster and its tier split.
	ReplaceRoster(ctx context.Context, db bun.IDB, key string, golfers []pooltypes.Golfer, tiers pooltypes.Tiers) error

	// SetPicksLock sets or clears the picks deadline.
	SetPicksLock(ctx context.Context, db bun.IDB, key string, lockAt *time.Time) error

	// Delete removes a tournament together with its teams and scores.
	Delete(ctx context.Context, db bun.IDB, key string) error
}
