package scorehandlers

import (
	"context"
	"net/http"

	scorequeue "github.com/Black-And-White-Club/majors-pool/app/modules/score/infrastructure/queue"
)

// Handlers serves the score HTTP surface.
type Handlers interface {
	HandleListScores(w http.ResponseWriter, r *http.Request)
	HandleUpsertScore(w http.ResponseWriter, r *http.Request)
	HandleDeleteScore(w http.ResponseWriter, r *http.Request)
	HandleRefreshLive(w http.ResponseWriter, r *http.Request)
	HandleListRefreshJobs(w http.ResponseWriter, r *http.Request)
}

// JobQueue is the part of the refresh queue the handlers use.
type JobQueue interface {
	EnqueueRefresh(ctx context.Context, tournamentKey string) (int64, error)
	ListJobs(ctx context.Context) ([]scorequeue.JobInfo, error)
}
