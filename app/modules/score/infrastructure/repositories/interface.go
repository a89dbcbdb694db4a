package scoredb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for score persistence.
type Repository interface {
	// ListByTournament returns every stored score for a tournament.
	ListByTournament(ctx context.Context, db bun.IDB, tournamentKey string) ([]Score, error)

	// Get returns one golfer's score.
	Get(ctx context.Context, db bun.IDB, tournamentKey, golferName string) (*Score, error)

	// Upsert replaces a golfer's stored score wholesale.
	Upsert(ctx context.Context, db bun.IDB, score *Score) error

	// UpsertBatch replaces several scores with a single statement.
	UpsertBatch(ctx context.Context, db bun.IDB, scores []Score) error

	// Delete removes one golfer's score.
	Delete(ctx context.Context, db bun.IDB, tournamentKey, golferName string) error
}
