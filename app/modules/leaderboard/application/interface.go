package leaderboardservice

import (
	"context"

	scoredb "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/repositories"
	teamdb "github.com/Black-And-White-Club/majors-pool/app/modules/team/infrastructure/repositories"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// Service defines the leaderboard operations. Standings are never stored;
// every call ranks a fresh snapshot.
type Service interface {
	GetStandings(ctx context.Context, tournamentKey string) (*StandingsView, error)
	StandingsChart(ctx context.Context, tournamentKey string) (*Chart, error)
	RecordStandings(ctx context.Context, tournamentKey string) error
}

// TournamentLookup loads the tournament par and name.
type TournamentLookup interface {
	GetByKey(ctx context.Context, db bun.IDB, key string) (*tournamentdb.Tournament, error)
}

// TeamLister loads every team of a tournament.
type TeamLister interface {
	ListByTournament(ctx context.Context, db bun.IDB, tournamentKey string) ([]teamdb.Team, error)
}

// ScoreLister loads every stored score of a tournament.
type ScoreLister interface {
	ListByTournament(ctx context.Context, db bun.IDB, tournamentKey string) ([]scoredb.Score, error)
}
