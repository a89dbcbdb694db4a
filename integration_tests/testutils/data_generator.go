package testutils

import (
	"fmt"
	"time"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator builds rosters, teams and scores for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator. Pass a seed for reproducible data.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was created with.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// GenerateRoster returns count distinct golfer names.
func (g *TestDataGenerator) GenerateRoster(count int) []string {
	seen := make(map[string]struct{}, count)
	names := make([]string, 0, count)
	for len(names) < count {
		name := g.faker.FirstName() + " " + g.faker.LastName()
		if _, dup := seen[name]; dup {
			name = fmt.Sprintf("%s %d", name, len(names))
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// GenerateTournamentKey returns a key like "open-2027-abcd".
func (g *TestDataGenerator) GenerateTournamentKey() string {
	return fmt.Sprintf("open-%d-%s", g.faker.Number(2026, 2035), g.faker.LetterN(4))
}

// GenerateTeamName returns a pool team name.
func (g *TestDataGenerator) GenerateTeamName() string {
	return fmt.Sprintf("%s %s", g.faker.Adjective(), g.faker.Animal())
}

// GeneratePicks drafts one random golfer from every tier.
func (g *TestDataGenerator) GeneratePicks(tiers pooltypes.Tiers) pooltypes.Picks {
	picks := make(pooltypes.Picks, pooltypes.TierCount)
	for _, tier := range pooltypes.TierKeys {
		golfers := tiers[tier]
		if len(golfers) == 0 {
			continue
		}
		picks[tier] = golfers[g.faker.Number(0, len(golfers)-1)]
	}
	return picks
}

// GenerateScore returns a record with played rounds of realistic strokes.
// A golfer who missed the cut has only two rounds.
func (g *TestDataGenerator) GenerateScore(golfer string, played int, madeCut bool) pooltypes.ScoreRecord {
	if !madeCut && played > 2 {
		played = 2
	}
	var rounds pooltypes.Rounds
	for i := 0; i < played && i < len(rounds); i++ {
		rounds[i] = pooltypes.IntPtr(g.faker.Number(65, 78))
	}
	return pooltypes.ScoreRecord{
		GolferName: golfer,
		Rounds:     rounds,
		MadeCut:    madeCut,
	}
}
