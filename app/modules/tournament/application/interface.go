package tournamentservice

import (
	"context"
	"time"
)

// Service defines the tournament administration operations.
type Service interface {
	ListTournaments(ctx context.Context) ([]TournamentInfo, error)
	GetTournament(ctx context.Context, key string) (*TournamentInfo, error)
	UpsertTournament(ctx context.Context, req UpsertTournamentRequest) (*TournamentInfo, error)
	UploadRoster(ctx context.Context, key, filename string, data []byte) (*RosterResult, error)
	ReplaceRoster(ctx context.Context, key string, names []string) (*RosterResult, error)
	SetPicksLock(ctx context.Context, key, input, timezone string) (*time.Time, error)
	DeleteTournament(ctx context.Context, key string) error
}
