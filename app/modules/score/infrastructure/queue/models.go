package scorequeue

// LiveRefreshJob refreshes live scores. An empty TournamentKey refreshes
// every tournament that has a live identifier.
type LiveRefreshJob struct {
	TournamentKey string `json:"tournament_key,omitempty"`
}

// Kind returns the job type identifier for River
func (LiveRefreshJob) Kind() string { return "live_refresh" }

// JobInfo represents information about a queued refresh job (for debugging/monitoring)
type JobInfo struct {
	ID            int64  `json:"id"`
	TournamentKey string `json:"tournament_key,omitempty"`
	State         string `json:"state"`
	ScheduledAt   string `json:"scheduled_at"`
	Attempt       int    `json:"attempt"`
	MaxAttempts   int    `json:"max_attempts"`
}
