package scoreservice

import (
	"context"

	scoredomain "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// Service defines the score operations.
type Service interface {
	ListScores(ctx context.Context, tournamentKey string) ([]ScoreView, error)
	UpsertScore(ctx context.Context, tournamentKey string, req ManualScoreRequest) (*ScoreView, error)
	DeleteScore(ctx context.Context, tournamentKey, golferName string) error
	RefreshLive(ctx context.Context, tournamentKey string) (*RefreshResult, error)
	RefreshAllLive(ctx context.Context) (int, error)
}

// TournamentLookup is the part of the tournament repository scores depend on.
type TournamentLookup interface {
	GetByKey(ctx context.Context, db bun.IDB, key string) (*tournamentdb.Tournament, error)
	List(ctx context.Context, db bun.IDB) ([]tournamentdb.Tournament, error)
}

// LiveFeed fetches a live leaderboard for a "<name>-<year>" identifier.
type LiveFeed interface {
	FetchLeaderboard(ctx context.Context, liveID string) (*scoredomain.LeaderboardPayload, error)
}
