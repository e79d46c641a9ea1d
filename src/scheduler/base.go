package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ScheduledTask runs a job on a cron schedule until cancelled. A run that is
// still in progress when the next tick fires makes that tick a no-op.
type ScheduledTask struct {
	name   string
	cronID cron.EntryID
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduledTask(cronSpec string, name string, logger *logrus.Logger, taskFunc func(ctx context.Context) error) (*ScheduledTask, error) {
	ctx, cancel := context.WithCancel(context.Background())
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	task := &ScheduledTask{
		name:   name,
		cron:   c,
		ctx:    ctx,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		entry := logger.WithField("task", name)
		start := time.Now()
		if err := taskFunc(ctx); err != nil {
			entry.WithError(err).Error("scheduled task failed")
			return
		}
		entry.WithField("duration_ms", time.Since(start).Milliseconds()).Info("scheduled task completed")
	})
	if err != nil {
		cancel()
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

func (s *ScheduledTask) Name() string {
	return s.name
}

// NextRun reports when the task fires next.
func (s *ScheduledTask) NextRun() time.Time {
	return s.cron.Entry(s.cronID).Next
}

// Cancel stops future runs and cancels the context of a running one.
func (s *ScheduledTask) Cancel() {
	s.cron.Remove(s.cronID)
	s.cancel()
	s.cron.Stop()
}
