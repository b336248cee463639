package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
)

// CreateIntervalScheduler runs task every interval, never overlapping with
// itself. The scheduler is returned unstarted.
func CreateIntervalScheduler(interval time.Duration, name string, task func()) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		s.Shutdown()
		return nil, err
	}

	return s, nil
}
