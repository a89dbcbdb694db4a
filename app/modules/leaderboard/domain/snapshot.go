package leaderboarddomain

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
)

// SnapshotVersion hashes everything standings depend on. Two snapshots with
// the same version rank identically, so the version doubles as an HTTP ETag.
// Team and score order do not affect the hash.
func SnapshotVersion(par int, teams []pooltypes.Team, scores map[string]pooltypes.ScoreRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "par:%d;", par)

	sortedTeams := slices.Clone(teams)
	slices.SortFunc(sortedTeams, func(a, b pooltypes.Team) int {
		return cmp.Compare(a.ID, b.ID)
	})
	for _, t := range sortedTeams {
		fmt.Fprintf(&sb, "team:%s:%s", t.ID, t.Name)
		for _, tier := range pooltypes.TierKeys {
			fmt.Fprintf(&sb, ":%s", t.Picks[tier])
		}
		sb.WriteByte(';')
	}

	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		rec := scores[name]
		fmt.Fprintf(&sb, "score:%s:%t", name, rec.MadeCut)
		for _, r := range rec.Rounds {
			fmt.Fprintf(&sb, ":%s", optInt(r))
		}
		fmt.Fprintf(&sb, ":%s:%s;", optInt(rec.Thru), optInt(rec.CurrentRound))
	}

	hash := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(hash[:])
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
