package scoredomain

import (
	"strings"
	"unicode/utf8"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
)

// MatchOutcome classifies a match attempt.
type MatchOutcome int

const (
	NoMatch MatchOutcome = iota
	Matched
	Ambiguous
)

func (o MatchOutcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	default:
		return "no_match"
	}
}

// MatchStage names the cascade stage that decided a match.
type MatchStage string

const (
	StageNone      MatchStage = ""
	StageOverride  MatchStage = "override"
	StageExact     MatchStage = "exact"
	StageFirstLast MatchStage = "first_last"
	StageLastName  MatchStage = "last_name"
	StagePartial   MatchStage = "partial"
	StageReversed  MatchStage = "reversed"
)

// MatchResult is the outcome of resolving one feed name against a roster.
// Golfer is set only when Outcome is Matched. Candidates lists the roster
// names an Ambiguous stage could not choose between.
type MatchResult struct {
	Outcome    MatchOutcome
	Golfer     string
	Stage      MatchStage
	Candidates []string
}

type rosterEntry struct {
	name       string
	normalized string
	tokens     []string
}

// Match resolves a feed name to exactly one roster golfer. Every stage that
// finds more than one candidate refuses with Ambiguous instead of guessing,
// and a Matched result always names a golfer present in roster.
func Match(apiName string, roster []pooltypes.Golfer) MatchResult {
	return newRosterIndex(roster).match(apiName)
}

// rosterIndex caches normalized roster names so a whole feed can be matched
// without renormalizing the roster for every row.
type rosterIndex struct {
	entries []rosterEntry
	byName  map[string]struct{}
}

func newRosterIndex(roster []pooltypes.Golfer) *rosterIndex {
	idx := &rosterIndex{
		entries: make([]rosterEntry, 0, len(roster)),
		byName:  make(map[string]struct{}, len(roster)),
	}
	for _, g := range roster {
		n := Normalize(g.Name)
		idx.entries = append(idx.entries, rosterEntry{
			name:       g.Name,
			normalized: n,
			tokens:     significantTokens(n),
		})
		idx.byName[g.Name] = struct{}{}
	}
	return idx
}

func (idx *rosterIndex) match(apiName string) MatchResult {
	query := Normalize(apiName)
	if query == "" {
		return MatchResult{Outcome: NoMatch}
	}

	if target, ok := nameOverrides[query]; ok {
		if _, onRoster := idx.byName[target]; onRoster {
			return MatchResult{Outcome: Matched, Golfer: target, Stage: StageOverride}
		}
	}

	if r, decided := decide(StageExact, idx.filter(func(e rosterEntry) bool {
		return e.normalized == query
	})); decided {
		return r
	}

	apiTokens := significantTokens(query)
	if len(apiTokens) == 0 {
		return MatchResult{Outcome: NoMatch}
	}
	first, last := apiTokens[0], apiTokens[len(apiTokens)-1]

	if len(apiTokens) >= 2 {
		if r, decided := decide(StageFirstLast, idx.filter(func(e rosterEntry) bool {
			return len(e.tokens) >= 2 && e.tokens[0] == first && e.tokens[len(e.tokens)-1] == last
		})); decided {
			return r
		}
	}

	if utf8.RuneCountInString(last) > 2 {
		if r, decided := decide(StageLastName, idx.filter(func(e rosterEntry) bool {
			return len(e.tokens) > 0 && e.tokens[len(e.tokens)-1] == last
		})); decided {
			return r
		}
	}

	required := min(2, len(apiTokens))
	if r, decided := decide(StagePartial, idx.filter(func(e rosterEntry) bool {
		return overlap(apiTokens, e) >= required
	})); decided {
		return r
	}

	if len(apiTokens) >= 2 {
		reversed := last + " " + first
		if r, decided := decide(StageReversed, idx.filter(func(e rosterEntry) bool {
			return e.normalized != "" &&
				(strings.Contains(e.normalized, reversed) || strings.Contains(reversed, e.normalized))
		})); decided {
			return r
		}
	}

	return MatchResult{Outcome: NoMatch}
}

func (idx *rosterIndex) filter(keep func(rosterEntry) bool) []string {
	var out []string
	for _, e := range idx.entries {
		if keep(e) {
			out = append(out, e.name)
		}
	}
	return out
}

// decide turns a stage's candidate list into a result. An empty list lets the
// cascade continue.
func decide(stage MatchStage, candidates []string) (MatchResult, bool) {
	switch len(candidates) {
	case 0:
		return MatchResult{}, false
	case 1:
		return MatchResult{Outcome: Matched, Golfer: candidates[0], Stage: stage}, true
	default:
		return MatchResult{Outcome: Ambiguous, Stage: stage, Candidates: candidates}, true
	}
}

// overlap counts feed tokens longer than two characters that appear inside
// the roster name, or that contain one of the roster's long tokens.
func overlap(apiTokens []string, e rosterEntry) int {
	n := 0
	for _, tok := range apiTokens {
		if utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		if strings.Contains(e.normalized, tok) || containsRosterToken(tok, e.tokens) {
			n++
		}
	}
	return n
}

func containsRosterToken(apiToken string, rosterTokens []string) bool {
	for _, rt := range rosterTokens {
		if utf8.RuneCountInString(rt) > 2 && strings.Contains(apiToken, rt) {
			return true
		}
	}
	return false
}
