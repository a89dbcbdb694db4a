package scoredomain

import (
	"cmp"
	"slices"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggestionThreshold is the minimum normalized similarity for a roster name
// to be offered as a "did you mean" hint.
const suggestionThreshold = 0.7

type suggestion struct {
	name       string
	similarity float64
}

// Suggest ranks roster names by Levenshtein similarity to name. It is only a
// review aid for unresolved rows and never produces a match.
func Suggest(name string, roster []pooltypes.Golfer, limit int) []string {
	query := Normalize(name)
	if query == "" || limit <= 0 {
		return nil
	}

	var hits []suggestion
	for _, g := range roster {
		candidate := Normalize(g.Name)
		longest := max(len(query), len(candidate))
		if longest == 0 {
			continue
		}
		distance := fuzzy.LevenshteinDistance(query, candidate)
		similarity := 1 - float64(distance)/float64(longest)
		if similarity >= suggestionThreshold {
			hits = append(hits, suggestion{name: g.Name, similarity: similarity})
		}
	}

	slices.SortStableFunc(hits, func(a, b suggestion) int {
		return cmp.Compare(b.similarity, a.similarity)
	})

	out := make([]string, 0, min(limit, len(hits)))
	for _, h := range hits {
		if len(out) == limit {
			break
		}
		out = append(out, h.name)
	}
	return out
}
