package leaderboarddomain

import (
	"cmp"
	"slices"

	scoredomain "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain"
	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
)

// bestOf is how many picks count toward a team total.
const bestOf = 4

// PickScore is one drafted golfer on a standings line. Score is nil when the
// golfer has no record yet.
type PickScore struct {
	Tier     pooltypes.TierKey       `json:"tier"`
	Golfer   string                  `json:"golfer"`
	Score    *scoredomain.RoundScore `json:"score,omitempty"`
	Progress *scoredomain.Progress   `json:"progress,omitempty"`
	Counted  bool                    `json:"counted"`
}

// Standing is one ranked team.
type Standing struct {
	Position         int         `json:"position"`
	Tied             bool        `json:"tied"`
	TeamID           string      `json:"team_id"`
	TeamName         string      `json:"team_name"`
	TotalScore       int         `json:"total_score"`
	LowestIndividual *int        `json:"lowest_individual,omitempty"`
	ScoredPicks      int         `json:"scored_picks"`
	Picks            []PickScore `json:"picks"`
}

// Rank scores every team from a snapshot of stored records and orders them by
// best-four total, then by the lowest single golfer, with teams lacking any
// scored golfer last among equals. Equal keys keep input order, and equal
// keys share a position.
func Rank(teams []pooltypes.Team, scores map[string]pooltypes.ScoreRecord, par int) []Standing {
	out := make([]Standing, 0, len(teams))
	for _, team := range teams {
		out = append(out, scoreTeam(team, scores, par))
	}

	slices.SortStableFunc(out, compareStandings)
	assignPositions(out)
	return out
}

func scoreTeam(team pooltypes.Team, scores map[string]pooltypes.ScoreRecord, par int) Standing {
	s := Standing{
		TeamID:   team.ID,
		TeamName: team.Name,
		Picks:    make([]PickScore, 0, len(pooltypes.TierKeys)),
	}

	var scored []int
	for _, tier := range pooltypes.TierKeys {
		golfer, ok := team.Picks[tier]
		if !ok {
			continue
		}
		pick := PickScore{Tier: tier, Golfer: golfer}
		if rec, found := scores[golfer]; found {
			rs := scoredomain.ScoreOf(rec, par)
			pick.Score = &rs
			pick.Progress = scoredomain.LiveProgress(rs, rec.Thru, rec.CurrentRound)
			scored = append(scored, len(s.Picks))
		}
		s.Picks = append(s.Picks, pick)
	}

	slices.SortStableFunc(scored, func(a, b int) int {
		return cmp.Compare(s.Picks[a].Score.ToPar, s.Picks[b].Score.ToPar)
	})

	for i, idx := range scored {
		toPar := s.Picks[idx].Score.ToPar
		if i < bestOf {
			s.TotalScore += toPar
			s.Picks[idx].Counted = true
		}
		if s.LowestIndividual == nil || toPar < *s.LowestIndividual {
			v := toPar
			s.LowestIndividual = &v
		}
	}
	s.ScoredPicks = len(scored)
	return s
}

func compareStandings(a, b Standing) int {
	if c := cmp.Compare(a.TotalScore, b.TotalScore); c != 0 {
		return c
	}
	switch {
	case a.LowestIndividual == nil && b.LowestIndividual == nil:
		return 0
	case a.LowestIndividual == nil:
		return 1
	case b.LowestIndividual == nil:
		return -1
	}
	return cmp.Compare(*a.LowestIndividual, *b.LowestIndividual)
}

// assignPositions uses competition numbering: two teams tied for first are
// both 1 and the next team is 3.
func assignPositions(standings []Standing) {
	for i := range standings {
		if i > 0 && compareStandings(standings[i-1], standings[i]) == 0 {
			standings[i].Position = standings[i-1].Position
			standings[i].Tied = true
			standings[i-1].Tied = true
			continue
		}
		standings[i].Position = i + 1
	}
}

// BestFour returns the golfers counted toward a standing's total, best first.
func (s Standing) BestFour() []string {
	counted := make([]PickScore, 0, bestOf)
	for _, p := range s.Picks {
		if p.Counted {
			counted = append(counted, p)
		}
	}
	slices.SortStableFunc(counted, func(a, b PickScore) int {
		return cmp.Compare(a.Score.ToPar, b.Score.ToPar)
	})
	names := make([]string, len(counted))
	for i, p := range counted {
		names[i] = p.Golfer
	}
	return names
}
