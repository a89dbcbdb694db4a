package scoreservice

import (
	"time"

	scoredomain "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain"
	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
)

// ScoreView is a stored score with its computed scoring line.
type ScoreView struct {
	pooltypes.ScoreRecord
	Score     scoredomain.RoundScore `json:"score"`
	Progress  *scoredomain.Progress  `json:"progress,omitempty"`
	Source    string                 `json:"source"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ManualScoreRequest replaces a golfer's stored score wholesale. Omitted
// rounds are cleared.
type ManualScoreRequest struct {
	GolferName   string           `json:"golfer_name"`
	Rounds       pooltypes.Rounds `json:"rounds"`
	MadeCut      *bool            `json:"made_cut,omitempty"`
	Thru         *int             `json:"thru,omitempty"`
	CurrentRound *int             `json:"current_round,omitempty"`
}

// RefreshResult is returned by a live refresh.
type RefreshResult struct {
	TournamentName   string                   `json:"tournament_name"`
	TournamentStatus string                   `json:"tournament_status"`
	Applied          int                      `json:"applied"`
	Report           scoredomain.IngestReport `json:"report"`
}
