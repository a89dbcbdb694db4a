package scorequeue

import (
	"errors"
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"github.com/robfig/cron/v3"
)

// ErrNoSchedule is returned when neither a cron expression nor a positive
// interval is configured.
var ErrNoSchedule = errors.New("live refresh needs a cron expression or a positive interval")

// NewSchedule builds the periodic live refresh schedule. A standard
// five-field cron expression takes precedence over the fixed interval.
func NewSchedule(cronExpr string, interval time.Duration) (river.PeriodicSchedule, error) {
	if cronExpr != "" {
		sched, err := cron.ParseStandard(cronExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid refresh cron %q: %w", cronExpr, err)
		}
		return sched, nil
	}
	if interval <= 0 {
		return nil, ErrNoSchedule
	}
	return river.PeriodicInterval(interval), nil
}
