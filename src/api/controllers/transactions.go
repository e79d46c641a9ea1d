package controllers

import (
	"context"
	"errors"
	"strings"

	"salesboard/src/schemas"
	"salesboard/src/utils"

	"golang.org/x/sync/errgroup"
)

const (
	statisticsKind = "statistics"
	barChartKind   = "bar_chart"
	pieChartKind   = "pie_chart"
)

type TransactionsControllerI interface {
	Initialize(ctx context.Context) (*schemas.MessageResponse, error)
	GetStatistics(ctx context.Context, month string) (*schemas.StatisticsResponse, error)
	GetBarChart(ctx context.Context, month string) (schemas.BarChartResponse, error)
	GetPieChart(ctx context.Context, month string) (schemas.PieChartResponse, error)
	GetFinalResponse(ctx context.Context, month string) (*schemas.FinalResponse, error)
}

func cacheKey(kind string, month string) string {
	return kind + ":" + strings.ToLower(month)
}

// cached serves result from the response cache or fills it with load.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, c *Controller, key string, load func() (T, error)) (T, error) {
	logger := utils.LoggerFromContext(ctx)
	enabled := c.Cache != nil && c.CacheTTL > 0

	// The generation is taken before loading so a result computed while a
	// seed runs is written under the invalidated generation and never read.
	var generation int64
	if enabled {
		var err error
		generation, err = c.Cache.Generation(ctx)
		if err != nil {
			logger.WithError(err).WithField("key", key).Warn("cache read failed")
			enabled = false
		}
	}

	if enabled {
		var hit T
		found, err := c.Cache.Get(ctx, key, &hit)
		if err != nil {
			logger.WithError(err).WithField("key", key).Warn("cache read failed")
		} else if found {
			return hit, nil
		}
	}

	result, err := load()
	if err != nil {
		return result, err
	}

	if enabled {
		if err := c.Cache.SetAt(ctx, generation, key, result, c.CacheTTL); err != nil {
			logger.WithError(err).WithField("key", key).Warn("cache write failed")
		}
	}
	return result, nil
}

// Initialize seeds the store and drops every cached aggregate.
func (c *Controller) Initialize(ctx context.Context) (*schemas.MessageResponse, error) {
	res, err := c.SeedService.Initialize(ctx)
	if err != nil {
		return nil, err
	}
	c.invalidateCache(ctx)
	return res, nil
}

func (c *Controller) invalidateCache(ctx context.Context) {
	if c.Cache == nil {
		return
	}
	if err := c.Cache.Invalidate(ctx); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warn("cache invalidation failed")
	}
}

func (c *Controller) GetStatistics(ctx context.Context, month string) (*schemas.StatisticsResponse, error) {
	return cached(ctx, c, cacheKey(statisticsKind, month), func() (*schemas.StatisticsResponse, error) {
		return c.TransactionService.GetStatistics(ctx, month)
	})
}

func (c *Controller) GetBarChart(ctx context.Context, month string) (schemas.BarChartResponse, error) {
	return cached(ctx, c, cacheKey(barChartKind, month), func() (schemas.BarChartResponse, error) {
		return c.TransactionService.GetBarChart(ctx, month)
	})
}

func (c *Controller) GetPieChart(ctx context.Context, month string) (schemas.PieChartResponse, error) {
	return cached(ctx, c, cacheKey(pieChartKind, month), func() (schemas.PieChartResponse, error) {
		return c.TransactionService.GetPieChart(ctx, month)
	})
}

// GetFinalResponse calls the statistics, bar chart and pie chart endpoints of
// this same service concurrently and combines their bodies.
func (c *Controller) GetFinalResponse(ctx context.Context, month string) (*schemas.FinalResponse, error) {
	var (
		statistics *schemas.StatisticsResponse
		barChart   schemas.BarChartResponse
		pieChart   schemas.PieChartResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		statistics, err = c.SalesClient.GetStatistics(gctx, month)
		return subRequestError(statisticsKind, err)
	})
	g.Go(func() error {
		var err error
		barChart, err = c.SalesClient.GetBarChart(gctx, month)
		return subRequestError(barChartKind, err)
	})
	g.Go(func() error {
		var err error
		pieChart, err = c.SalesClient.GetPieChart(gctx, month)
		return subRequestError(pieChartKind, err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &schemas.FinalResponse{
		Statistics: *statistics,
		BarChart:   barChart,
		PieChart:   pieChart,
	}, nil
}

// subRequestError keeps the status of an endpoint that answered with an
// error and turns transport failures into a 502.
func subRequestError(kind string, err error) error {
	if err == nil {
		return nil
	}
	var httpErr *utils.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return utils.BadGateway("failed to fetch " + kind + ": " + err.Error())
}
