package scoreevents

import "time"

// ScoresAppliedV1 is published after score rows for a tournament change.
const ScoresAppliedV1 = "scores.applied.v1"

// Sources of a score change.
const (
	SourceManual = "manual"
	SourceLive   = "live"
)

// ScoresAppliedPayloadV1 describes a committed score change.
type ScoresAppliedPayloadV1 struct {
	TournamentKey string    `json:"tournament_key"`
	Source        string    `json:"source"`
	Golfers       []string  `json:"golfers"`
	AppliedAt     time.Time `json:"applied_at"`
}
