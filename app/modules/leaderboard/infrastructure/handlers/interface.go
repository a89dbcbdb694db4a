package leaderboardhandlers

import (
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers defines the leaderboard event and HTTP handlers.
type Handlers interface {
	// HandleScoresApplied recomputes standings after a score write.
	HandleScoresApplied(msg *message.Message) error

	// HandleGetStandings serves ranked standings as JSON.
	HandleGetStandings(w http.ResponseWriter, r *http.Request)
	// HandleGetStandingsChart serves the standings chart as PNG.
	HandleGetStandingsChart(w http.ResponseWriter, r *http.Request)
}
