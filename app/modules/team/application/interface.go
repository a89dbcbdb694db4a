package teamservice

import (
	"context"

	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/uptrace/bun"
)

// Service defines the team operations.
type Service interface {
	ListTeams(ctx context.Context, tournamentKey string) ([]pooltypes.Team, error)
	SubmitTeam(ctx context.Context, tournamentKey string, req SubmitTeamRequest) (*pooltypes.Team, error)
	DeleteTeam(ctx context.Context, tournamentKey, teamID string) error
}

// TournamentLookup is the part of the tournament repository teams depend on.
type TournamentLookup interface {
	GetByKey(ctx context.Context, db bun.IDB, key string) (*tournamentdb.Tournament, error)
}

// SubmitTeamRequest is a player's entry.
type SubmitTeamRequest struct {
	Name  string          `json:"name"`
	Picks pooltypes.Picks `json:"picks"`
}
