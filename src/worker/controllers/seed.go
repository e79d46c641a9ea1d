package controllers

import (
	"context"

	"salesboard/src/scheduler"
	"salesboard/src/schemas"
	"salesboard/src/utils"
)

const ReseedTaskName = "reseed"

// Reseed replaces the stored transactions and drops the cached aggregates.
func (c *Controller) Reseed(ctx context.Context) (*schemas.MessageResponse, error) {
	res, err := c.SeedService.Reseed(utils.WithLogger(ctx, c.Logger))
	if err != nil {
		return nil, err
	}
	if c.Cache != nil {
		if err := c.Cache.Invalidate(ctx); err != nil {
			c.Logger.WithError(err).Warn("cache invalidation failed")
		}
	}
	return res, nil
}

// ScheduleReseed runs Reseed on cronSpec, replacing any earlier schedule.
func (c *Controller) ScheduleReseed(cronSpec string) error {
	return c.ScheduleTask(ReseedTaskName, cronSpec, func(ctx context.Context) error {
		_, err := c.Reseed(ctx)
		return err
	})
}

// ScheduleTask handles the scheduling and re-scheduling of named tasks.
func (c *Controller) ScheduleTask(name string, cronSpec string, taskFunc func(context.Context) error) error {
	c.SchedulerMutex.Lock()
	if existingTask, exists := c.Schedulers[name]; exists {
		existingTask.Cancel()
		delete(c.Schedulers, name)
	}
	c.SchedulerMutex.Unlock()

	newTask, err := scheduler.NewScheduledTask(cronSpec, name, c.Logger, taskFunc)
	if err != nil {
		return err
	}

	c.SchedulerMutex.Lock()
	c.Schedulers[name] = newTask
	c.SchedulerMutex.Unlock()

	return nil
}
