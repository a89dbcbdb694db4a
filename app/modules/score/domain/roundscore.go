package scoredomain

import "github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"

const (
	// DefaultPar is the per-round par used when a tournament does not set one.
	DefaultPar = 72
	MinPar     = 68
	MaxPar     = 76

	// missedCutOverPar is how far over par each unplayed weekend round is
	// charged after a missed cut.
	missedCutOverPar = 8
)

// MissedCutPenalty is the stroke count charged for rounds 3 and 4 when a
// golfer misses the cut.
func MissedCutPenalty(par int) int {
	return par + missedCutOverPar
}

// RoundScore is a golfer's scoring line after the missed-cut policy has been
// applied.
type RoundScore struct {
	Rounds          pooltypes.Rounds `json:"rounds"`
	Total           int              `json:"total"`
	ToPar           int              `json:"to_par"`
	CompletedRounds int              `json:"completed_rounds"`
}

// ComputeToPar converts per-round strokes into a to-par figure.
//
// A missed cut overwrites rounds 3 and 4 with the penalty and measures the
// total against four full rounds. Otherwise to-par is measured against the
// rounds actually completed, and is 0 before any round is in. Stroke values
// are not validated.
func ComputeToPar(rounds pooltypes.Rounds, madeCut bool, par int) RoundScore {
	out := RoundScore{Rounds: rounds}

	if !madeCut {
		penalty := MissedCutPenalty(par)
		out.Rounds[2] = pooltypes.IntPtr(penalty)
		out.Rounds[3] = pooltypes.IntPtr(penalty)
	}

	for _, r := range out.Rounds {
		if r == nil {
			continue
		}
		out.CompletedRounds++
		out.Total += *r
	}

	switch {
	case !madeCut:
		out.ToPar = out.Total - par*len(out.Rounds)
	case out.CompletedRounds > 0:
		out.ToPar = out.Total - par*out.CompletedRounds
	}
	return out
}

// ScoreOf applies ComputeToPar to a stored record.
func ScoreOf(rec pooltypes.ScoreRecord, par int) RoundScore {
	return ComputeToPar(rec.Rounds, rec.MadeCut, par)
}

// ValidPar reports whether par is an accepted per-round par.
func ValidPar(par int) bool {
	return par >= MinPar && par <= MaxPar
}
