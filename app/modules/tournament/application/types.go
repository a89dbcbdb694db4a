package tournamentservice

import (
	"time"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
)

// TournamentInfo is the read model returned to callers.
type TournamentInfo struct {
	Key         string             `json:"key"`
	Name        string             `json:"name"`
	LogoURL     *string            `json:"logo_url,omitempty"`
	Par         int                `json:"par"`
	Golfers     []pooltypes.Golfer `json:"golfers"`
	Tiers       pooltypes.Tiers    `json:"tiers"`
	LiveID      *string            `json:"live_id,omitempty"`
	PicksLockAt *time.Time         `json:"picks_lock_at,omitempty"`
	PicksLocked bool               `json:"picks_locked"`
}

// UpsertTournamentRequest creates or edits a tournament. A nil Par keeps the
// stored value, or the default for a new tournament.
type UpsertTournamentRequest struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url,omitempty"`
	Par     *int    `json:"par,omitempty"`
	LiveID  *string `json:"live_id,omitempty"`
}

// RosterResult summarizes a roster replacement.
type RosterResult struct {
	Golfers    int             `json:"golfers"`
	Duplicates int             `json:"duplicates"`
	Tiers      pooltypes.Tiers `json:"tiers"`
}
