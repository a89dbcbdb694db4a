// Package pooltypes holds the value types shared between pool modules.
package pooltypes

// Golfer is one entry of a tournament roster. Order is the 1-based position
// in the uploaded file and only decides tier membership.
type Golfer struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// TierKey names one of the six draft tiers.
type TierKey string

const (
	Tier1 TierKey = "tier1"
	Tier2 TierKey = "tier2"
	Tier3 TierKey = "tier3"
	Tier4 TierKey = "tier4"
	Tier5 TierKey = "tier5"
	Tier6 TierKey = "tier6"
)

// TierKeys lists the tiers in draft order.
var TierKeys = []TierKey{Tier1, Tier2, Tier3, Tier4, Tier5, Tier6}

// TierCount is the number of picks a complete team has.
const TierCount = 6

// Tiers maps each tier to the golfer names it holds.
type Tiers map[TierKey][]string

// Picks maps each tier to the golfer a team drafted from it.
type Picks map[TierKey]string

// Rounds holds strokes for rounds 1-4. A nil slot has not been played.
type Rounds [4]*int

// ScoreRecord is the stored state of one golfer in one tournament.
type ScoreRecord struct {
	GolferName   string `json:"golfer_name"`
	Rounds       Rounds `json:"rounds"`
	MadeCut      bool   `json:"made_cut"`
	Thru         *int   `json:"thru,omitempty"`
	CurrentRound *int   `json:"current_round,omitempty"`
}

// Team is a player's entry in the pool.
type Team struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Picks Picks  `json:"picks"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// RoundsOf builds Rounds from up to four values; a negative value leaves the
// slot empty.
func RoundsOf(values ...int) Rounds {
	var r Rounds
	for i, v := range values {
		if i >= len(r) {
			break
		}
		if v >= 0 {
			r[i] = IntPtr(v)
		}
	}
	return r
}
