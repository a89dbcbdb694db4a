package scoredomain

import (
	"strings"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
)

// missedCutStatuses are feed status codes meaning the golfer is done after
// round 2.
var missedCutStatuses = map[string]struct{}{
	"cut":          {},
	"wd":           {},
	"dq":           {},
	"withdrawn":    {},
	"disqualified": {},
}

// MadeCut reports whether a feed status code leaves the golfer in the field.
func MadeCut(status string) bool {
	_, missed := missedCutStatuses[strings.ToLower(strings.TrimSpace(status))]
	return !missed
}

// UnresolvedName is a feed row that could not be tied to one roster golfer.
type UnresolvedName struct {
	APIName     string       `json:"api_name"`
	Outcome     MatchOutcome `json:"-"`
	Reason      string       `json:"reason"`
	Candidates  []string     `json:"candidates,omitempty"`
	Suggestions []string     `json:"suggestions,omitempty"`
}

// DuplicateRow is a feed row dropped because an earlier row already resolved
// to the same golfer.
type DuplicateRow struct {
	APIName string `json:"api_name"`
	Golfer  string `json:"golfer"`
}

// IngestReport summarizes one ingestion batch for manual review.
type IngestReport struct {
	Rows            int              `json:"rows"`
	Matched         int              `json:"matched"`
	Unmatched       int              `json:"unmatched"`
	Ambiguous       int              `json:"ambiguous"`
	Duplicates      int              `json:"duplicates"`
	Unresolved      []UnresolvedName `json:"unresolved,omitempty"`
	DuplicateRows   []DuplicateRow   `json:"duplicate_rows,omitempty"`
	MissingFromFeed []string         `json:"missing_from_feed,omitempty"`
}

// IngestResult is the batch of full-record updates plus its report.
type IngestResult struct {
	Updates []pooltypes.ScoreRecord `json:"updates"`
	Report  IngestReport            `json:"report"`
}

const maxSuggestions = 3

// Ingest turns a feed leaderboard into one score update per resolved roster
// golfer. Rows that do not resolve are counted and reported, never applied.
// The first row resolving to a golfer wins; later ones are reported as
// duplicates.
func Ingest(payload LeaderboardPayload, roster []pooltypes.Golfer, par int) IngestResult {
	idx := newRosterIndex(roster)
	seen := make(map[string]struct{}, len(roster))

	var res IngestResult
	res.Updates = make([]pooltypes.ScoreRecord, 0, len(payload.Rows))

	for _, row := range payload.Rows {
		res.Report.Rows++
		name := row.FullName()

		m := idx.match(name)
		switch m.Outcome {
		case NoMatch:
			res.Report.Unmatched++
			res.Report.Unresolved = append(res.Report.Unresolved, UnresolvedName{
				APIName:     name,
				Outcome:     NoMatch,
				Reason:      NoMatch.String(),
				Suggestions: Suggest(name, roster, maxSuggestions),
			})
			continue
		case Ambiguous:
			res.Report.Ambiguous++
			res.Report.Unresolved = append(res.Report.Unresolved, UnresolvedName{
				APIName:    name,
				Outcome:    Ambiguous,
				Reason:     string(m.Stage) + " " + Ambiguous.String(),
				Candidates: m.Candidates,
			})
			continue
		}

		if _, dup := seen[m.Golfer]; dup {
			res.Report.Duplicates++
			res.Report.DuplicateRows = append(res.Report.DuplicateRows, DuplicateRow{APIName: name, Golfer: m.Golfer})
			continue
		}
		seen[m.Golfer] = struct{}{}
		res.Report.Matched++
		res.Updates = append(res.Updates, buildUpdate(m.Golfer, row, par))
	}

	for _, g := range roster {
		if _, ok := seen[g.Name]; !ok {
			res.Report.MissingFromFeed = append(res.Report.MissingFromFeed, g.Name)
		}
	}
	return res
}

func buildUpdate(golfer string, row LeaderboardRow, par int) pooltypes.ScoreRecord {
	rec := pooltypes.ScoreRecord{
		GolferName: golfer,
		MadeCut:    MadeCut(row.Status),
	}

	for _, r := range row.Rounds {
		roundID := 1
		if r.RoundID.Valid {
			roundID = r.RoundID.Value
		}
		slot := roundID - 1
		if slot < 0 || slot >= len(rec.Rounds) {
			continue
		}
		rec.Rounds[slot] = r.Strokes.Ptr()
	}

	if !rec.MadeCut {
		penalty := MissedCutPenalty(par)
		for _, slot := range []int{2, 3} {
			if rec.Rounds[slot] == nil || *rec.Rounds[slot] <= 0 {
				rec.Rounds[slot] = pooltypes.IntPtr(penalty)
			}
		}
	}

	if row.CurrentHole.Valid && ValidThru(row.CurrentHole.Value) && !row.RoundComplete {
		rec.Thru = row.CurrentHole.Ptr()
	}
	rec.CurrentRound = row.CurrentRoundScore.Ptr()
	return rec
}
