package scoredb

import (
	"time"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/uptrace/bun"
)

// Source values recorded on each score row.
const (
	SourceManual = "manual"
	SourceLive   = "live"
)

// Score is the stored state of one golfer in one tournament.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	TournamentKey string           `bun:"tournament_key,pk"`
	GolferName    string           `bun:"golfer_name,pk"`
	Rounds        pooltypes.Rounds `bun:"rounds,type:jsonb,notnull"`
	MadeCut       bool             `bun:"made_cut,notnull"`
	Thru          *int             `bun:"thru"`
	CurrentRound  *int             `bun:"current_round"`
	Source        string           `bun:"source,notnull"`
	UpdatedAt     time.Time        `bun:"updated_at,notnull,default:current_timestamp"`
}

// Record converts the row into the value type used by the domain layer.
func (s *Score) Record() pooltypes.ScoreRecord {
	return pooltypes.ScoreRecord{
		GolferName:   s.GolferName,
		Rounds:       s.Rounds,
		MadeCut:      s.MadeCut,
		Thru:         s.Thru,
		CurrentRound: s.CurrentRound,
	}
}

// FromRecord builds a row for tournamentKey from a domain record.
func FromRecord(tournamentKey string, rec pooltypes.ScoreRecord, source string) Score {
	return Score{
		TournamentKey: tournamentKey,
		GolferName:    rec.GolferName,
		Rounds:        rec.Rounds,
		MadeCut:       rec.MadeCut,
		Thru:          rec.Thru,
		CurrentRound:  rec.CurrentRound,
		Source:        source,
	}
}

// Records converts rows into a map keyed by golfer name.
func Records(rows []Score) map[string]pooltypes.ScoreRecord {
	out := make(map[string]pooltypes.ScoreRecord, len(rows))
	for i := range rows {
		out[rows[i].GolferName] = rows[i].Record()
	}
	return out
}
