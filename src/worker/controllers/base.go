package controllers

import (
	"sync"

	"salesboard/src/scheduler"
	"salesboard/src/services"
	"salesboard/src/utils"

	"github.com/sirupsen/logrus"
)

type Controller struct {
	SeedService    services.SeedServiceI
	Cache          utils.ResponseCache
	Logger         *logrus.Logger
	SchedulerMutex sync.Mutex
	Schedulers     map[string]*scheduler.ScheduledTask
}

func NewController(seedService services.SeedServiceI, cache utils.ResponseCache, logger *logrus.Logger) *Controller {
	return &Controller{
		SeedService: seedService,
		Cache:       cache,
		Logger:      logger,
		Schedulers:  map[string]*scheduler.ScheduledTask{},
	}
}

func (c *Controller) GetSchedulers() map[string]*scheduler.ScheduledTask {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	schedulers := make(map[string]*scheduler.ScheduledTask, len(c.Schedulers))
	for name, task := range c.Schedulers {
		schedulers[name] = task
	}
	return schedulers
}

// StopSchedulers cancels every scheduled task.
func (c *Controller) StopSchedulers() {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	for name, task := range c.Schedulers {
		task.Cancel()
		delete(c.Schedulers, name)
	}
}
