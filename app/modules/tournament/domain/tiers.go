package tournamentdomain

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
)

// tierSize is the number of golfers in every tier but the last.
const tierSize = 10

// BuildRoster trims names, drops blanks and repeats (first occurrence wins)
// and numbers the survivors in upload order.
func BuildRoster(names []string) []pooltypes.Golfer {
	seen := make(map[string]struct{}, len(names))
	roster := make([]pooltypes.Golfer, 0, len(names))
	for _, raw := range names {
		name := strings.Join(strings.Fields(raw), " ")
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		roster = append(roster, pooltypes.Golfer{Name: name, Order: len(roster) + 1})
	}
	return roster
}

// BuildTiers partitions a roster by upload order: tier1 holds golfers 1-10,
// tier2 11-20 and so on, with tier6 open-ended. Every tier key is present,
// empty when the roster is short.
func BuildTiers(roster []pooltypes.Golfer) pooltypes.Tiers {
	tiers := make(pooltypes.Tiers, len(pooltypes.TierKeys))
	for _, key := range pooltypes.TierKeys {
		tiers[key] = []string{}
	}

	ordered := slices.Clone(roster)
	slices.SortStableFunc(ordered, func(a, b pooltypes.Golfer) int {
		return cmp.Compare(a.Order, b.Order)
	})

	last := len(pooltypes.TierKeys) - 1
	for i, g := range ordered {
		bucket := min(i/tierSize, last)
		key := pooltypes.TierKeys[bucket]
		tiers[key] = append(tiers[key], g.Name)
	}
	return tiers
}

// TierOf returns the tier holding golfer.
func TierOf(tiers pooltypes.Tiers, golfer string) (pooltypes.TierKey, bool) {
	for _, key := range pooltypes.TierKeys {
		for _, name := range tiers[key] {
			if name == golfer {
				return key, true
			}
		}
	}
	return "", false
}
