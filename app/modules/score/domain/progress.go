package scoredomain

// CurrentRoundKind classifies the feed's current-round figure. The feed uses
// the same field for a running to-par delta and for a finished round's
// strokes, so the value alone decides which one it is.
type CurrentRoundKind int

const (
	CurrentRoundUnknown CurrentRoundKind = iota
	// CurrentRoundInProgress is a to-par delta for a round still being played.
	CurrentRoundInProgress
	// CurrentRoundCompleted is an 18-hole stroke total.
	CurrentRoundCompleted
)

const (
	inProgressMin = -10
	inProgressMax = 10

	completedMin = 60
	completedMax = 90

	lastInProgressHole = 17
)

// ClassifyCurrentRound is the single policy deciding what a current-round
// figure means. Scoring math never consults it.
func ClassifyCurrentRound(value int) CurrentRoundKind {
	switch {
	case value >= inProgressMin && value <= inProgressMax:
		return CurrentRoundInProgress
	case value >= completedMin && value <= completedMax:
		return CurrentRoundCompleted
	default:
		return CurrentRoundUnknown
	}
}

// ValidThru reports whether a hole number describes a round still in play.
// Hole 18 means the round is finished.
func ValidThru(hole int) bool {
	return hole >= 1 && hole <= lastInProgressHole
}

// Progress is the informational in-round status shown next to a score.
type Progress struct {
	Thru         *int `json:"thru,omitempty"`
	CurrentRound *int `json:"current_round,omitempty"`
}

// LiveProgress returns the in-round status to display, or nil when the golfer
// has finished four rounds or the stored figures do not describe a round in
// play.
func LiveProgress(score RoundScore, thru, currentRound *int) *Progress {
	if score.CompletedRounds >= len(score.Rounds) {
		return nil
	}

	var p Progress
	if thru != nil && ValidThru(*thru) {
		v := *thru
		p.Thru = &v
	}
	if currentRound != nil && ClassifyCurrentRound(*currentRound) == CurrentRoundInProgress {
		v := *currentRound
		p.CurrentRound = &v
	}
	if p.Thru == nil && p.CurrentRound == nil {
		return nil
	}
	return &p
}
