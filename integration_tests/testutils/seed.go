package testutils

import (
	"testing"

	tournamentdomain "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
)

// SeededTournament is a stored tournament with its roster and tiers.
type SeededTournament struct {
	Key    string
	Par    int
	Roster []string
	Tiers  pooltypes.Tiers
}

// SeedTournament stores a par-72 tournament with a generated roster.
func (env *TestEnvironment) SeedTournament(t *testing.T, gen *TestDataGenerator, rosterSize int) SeededTournament {
	t.Helper()

	repo := tournamentdb.NewRepository(env.DB)
	key := gen.GenerateTournamentKey()
	names := gen.GenerateRoster(rosterSize)

	if err := repo.Upsert(env.Ctx, nil, &tournamentdb.Tournament{
		Key:  key,
		Name: "The Open " + key,
		Par:  72,
	}); err != nil {
		t.Fatalf("failed to seed tournament: %v", err)
	}

	roster := tournamentdomain.BuildRoster(names)
	tiers := tournamentdomain.BuildTiers(roster)
	if err := repo.ReplaceRoster(env.Ctx, nil, key, roster, tiers); err != nil {
		t.Fatalf("failed to seed roster: %v", err)
	}

	return SeededTournament{Key: key, Par: 72, Roster: names, Tiers: tiers}
}
