package teamdomain

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
)

var (
	// ErrIncompleteTeam is returned when a team lacks exactly one pick per tier.
	ErrIncompleteTeam = errors.New("team must have exactly one pick per tier")
	// ErrPickNotInTier is returned when a pick is not a member of its tier.
	ErrPickNotInTier = errors.New("pick is not in its tier")
	// ErrDuplicateTeam is returned when another team already has the same picks.
	ErrDuplicateTeam = errors.New("a team with identical picks already exists")
)

// NormalizePicks trims whitespace from every pick.
func NormalizePicks(picks pooltypes.Picks) pooltypes.Picks {
	out := make(pooltypes.Picks, len(picks))
	for k, v := range picks {
		out[pooltypes.TierKey(strings.TrimSpace(string(k)))] = strings.TrimSpace(v)
	}
	return out
}

// ValidatePicks checks that picks holds exactly one non-empty pick for each
// of the six tiers and that every pick belongs to its tier.
func ValidatePicks(picks pooltypes.Picks, tiers pooltypes.Tiers) error {
	if len(picks) != pooltypes.TierCount {
		return fmt.Errorf("%w: got %d picks", ErrIncompleteTeam, len(picks))
	}

	for _, key := range pooltypes.TierKeys {
		golfer, ok := picks[key]
		if !ok || golfer == "" {
			return fmt.Errorf("%w: missing %s", ErrIncompleteTeam, key)
		}
		if !inTier(tiers[key], golfer) {
			return fmt.Errorf("%w: %q is not in %s", ErrPickNotInTier, golfer, key)
		}
	}
	return nil
}

func inTier(members []string, golfer string) bool {
	for _, m := range members {
		if m == golfer {
			return true
		}
	}
	return false
}

// SamePicks compares two pick sets structurally; key order is irrelevant.
func SamePicks(a, b pooltypes.Picks) bool {
	return maps.Equal(a, b)
}

// FindDuplicate returns the first existing team whose picks equal picks.
func FindDuplicate(picks pooltypes.Picks, existing []pooltypes.Team) (pooltypes.Team, bool) {
	for _, t := range existing {
		if SamePicks(picks, t.Picks) {
			return t, true
		}
	}
	return pooltypes.Team{}, false
}
