package teamdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for team persistence.
type Repository interface {
	// ListByTournament returns a tournament's teams in submission order.
	ListByTournament(ctx context.Context, db bun.IDB, tournamentKey string) ([]Team, error)

	// Insert stores a new team.
	Insert(ctx context.Context, db bun.IDB, team *Team) error

	// LockTournament serializes team writes for one tournament until the
	// surrounding transaction ends.
	LockTournament(ctx context.Context, db bun.IDB, tournamentKey string) error

	// Delete removes a team from a tournament.
	Delete(ctx context.Context, db bun.IDB, tournamentKey string, id uuid.UUID) error
}
