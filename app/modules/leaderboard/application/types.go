package leaderboardservice

import (
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/majors-pool/app/modules/leaderboard/domain"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// StandingsView is a ranked snapshot. Version changes whenever anything the
// ranking depends on changes.
type StandingsView struct {
	TournamentKey  string                       `json:"tournament_key"`
	TournamentName string                       `json:"tournament_name"`
	Par            int                          `json:"par"`
	Version        string                       `json:"version"`
	ComputedAt     time.Time                    `json:"computed_at"`
	Standings      []leaderboarddomain.Standing `json:"standings"`
}

// Chart is a rendered standings PNG and the snapshot version it shows.
type Chart struct {
	PNG     []byte
	Version string
}

// ChartPalette holds the colors used when rendering charts.
type ChartPalette struct {
	Background  drawing.Color
	PrimaryLine drawing.Color
	AccentLine  drawing.Color
	TextColor   drawing.Color
}

// DefaultPalette is the Augusta green and gold scheme.
var DefaultPalette = ChartPalette{
	Background:  drawing.ColorFromHex("0f2418"),
	PrimaryLine: drawing.ColorFromHex("2e7d4f"),
	AccentLine:  drawing.ColorFromHex("e6c15a"),
	TextColor:   drawing.ColorFromHex("f4f1e6"),
}
