package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"salesboard/src/api/controllers"
	"salesboard/src/schemas"
	"salesboard/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transactionServiceMock struct {
	calls atomic.Int32
	err   error
}

func (m *transactionServiceMock) GetStatistics(ctx context.Context, month string) (*schemas.StatisticsResponse, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return &schemas.StatisticsResponse{TotalSaleAmount: 10.5, TotalSoldItems: 1, TotalNotSoldItems: 2}, nil
}

func (m *transactionServiceMock) GetBarChart(ctx context.Context, month string) (schemas.BarChartResponse, error) {
	m.calls.Add(1)
	return schemas.BarChartResponse{"0-100": 3}, m.err
}

func (m *transactionServiceMock) GetPieChart(ctx context.Context, month string) (schemas.PieChartResponse, error) {
	m.calls.Add(1)
	return schemas.PieChartResponse{"electronics": 3}, m.err
}

func (m *transactionServiceMock) GetCombined(ctx context.Context, month string) (*schemas.FinalResponse, error) {
	m.calls.Add(1)
	return &schemas.FinalResponse{}, m.err
}

type seedServiceMock struct {
	initialized int
	err         error
}

func (m *seedServiceMock) Initialize(ctx context.Context) (*schemas.MessageResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.initialized++
	return &schemas.MessageResponse{Message: "ok", Records: 3}, nil
}

func (m *seedServiceMock) Reseed(ctx context.Context) (*schemas.MessageResponse, error) {
	return m.Initialize(ctx)
}

func (m *seedServiceMock) ListRuns(ctx context.Context, limit int) ([]schemas.SeedRun, error) {
	return []schemas.SeedRun{{RunID: "run-1"}}, nil
}

type salesClientMock struct {
	statisticsErr error
	barChartErr   error
	pieChartErr   error
}

func (m *salesClientMock) GetStatistics(ctx context.Context, month string) (*schemas.StatisticsResponse, error) {
	if m.statisticsErr != nil {
		return nil, m.statisticsErr
	}
	return &schemas.StatisticsResponse{TotalSaleAmount: 99.9, TotalSoldItems: 4}, nil
}

func (m *salesClientMock) GetBarChart(ctx context.Context, month string) (schemas.BarChartResponse, error) {
	if m.barChartErr != nil {
		return nil, m.barChartErr
	}
	return schemas.BarChartResponse{"0-100": 4}, nil
}

func (m *salesClientMock) GetPieChart(ctx context.Context, month string) (schemas.PieChartResponse, error) {
	if m.pieChartErr != nil {
		return nil, m.pieChartErr
	}
	return schemas.PieChartResponse{"jewelery": 4}, nil
}

func newController(txService *transactionServiceMock, seedService *seedServiceMock, salesClient *salesClientMock, cache utils.ResponseCache, ttl time.Duration) *controllers.Controller {
	return controllers.NewController(txService, seedService, nil, salesClient, cache, ttl)
}

func TestStatisticsAreCachedPerMonth(t *testing.T) {
	txService := &transactionServiceMock{}
	ctrl := newController(txService, &seedServiceMock{}, &salesClientMock{}, utils.NewMemoryCache(), time.Minute)
	ctx := context.Background()

	first, err := ctrl.GetStatistics(ctx, "2021-11")
	require.NoError(t, err)
	second, err := ctrl.GetStatistics(ctx, "2021-11")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), txService.calls.Load())

	_, err = ctrl.GetStatistics(ctx, "2021-11-27")
	require.NoError(t, err)
	assert.Equal(t, int32(2), txService.calls.Load())
}

func TestCacheDisabledWithZeroTTL(t *testing.T) {
	txService := &transactionServiceMock{}
	cache := utils.NewMemoryCache()
	ctrl := newController(txService, &seedServiceMock{}, &salesClientMock{}, cache, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := ctrl.GetPieChart(ctx, "")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), txService.calls.Load())
	assert.Zero(t, cache.Size())
}

func TestInitializeInvalidatesCache(t *testing.T) {
	txService := &transactionServiceMock{}
	seedService := &seedServiceMock{}
	cache := utils.NewMemoryCache()
	ctrl := newController(txService, seedService, &salesClientMock{}, cache, time.Minute)
	ctx := context.Background()

	_, err := ctrl.GetBarChart(ctx, "2021")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Size())

	res, err := ctrl.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Records)
	assert.Zero(t, cache.Size())

	_, err = ctrl.GetBarChart(ctx, "2021")
	require.NoError(t, err)
	assert.Equal(t, int32(2), txService.calls.Load())
}

func TestInitializeFailureKeepsCache(t *testing.T) {
	cache := utils.NewMemoryCache()
	ctrl := newController(&transactionServiceMock{}, &seedServiceMock{err: utils.InternalServerError("boom")}, &salesClientMock{}, cache, time.Minute)
	ctx := context.Background()

	_, err := ctrl.GetBarChart(ctx, "")
	require.NoError(t, err)

	_, err = ctrl.Initialize(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, cache.Size())
}

func TestServiceErrorsAreNotCached(t *testing.T) {
	txService := &transactionServiceMock{err: errors.New("database is locked")}
	cache := utils.NewMemoryCache()
	ctrl := newController(txService, &seedServiceMock{}, &salesClientMock{}, cache, time.Minute)

	_, err := ctrl.GetStatistics(context.Background(), "")
	require.Error(t, err)
	assert.Zero(t, cache.Size())
}

func TestGetFinalResponse(t *testing.T) {
	ctrl := newController(&transactionServiceMock{}, &seedServiceMock{}, &salesClientMock{}, nil, 0)

	res, err := ctrl.GetFinalResponse(context.Background(), "2021-11")
	require.NoError(t, err)
	assert.Equal(t, 99.9, res.Statistics.TotalSaleAmount)
	assert.Equal(t, schemas.BarChartResponse{"0-100": 4}, res.BarChart)
	assert.Equal(t, schemas.PieChartResponse{"jewelery": 4}, res.PieChart)
}

func TestGetFinalResponseErrors(t *testing.T) {
	t.Run("transport failure is a bad gateway", func(t *testing.T) {
		ctrl := newController(&transactionServiceMock{}, &seedServiceMock{}, &salesClientMock{barChartErr: errors.New("connection refused")}, nil, 0)

		_, err := ctrl.GetFinalResponse(context.Background(), "")

		var httpErr *utils.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadGateway, httpErr.Code)
		assert.Contains(t, httpErr.Message, "bar_chart")
	})

	t.Run("endpoint error keeps its status", func(t *testing.T) {
		ctrl := newController(&transactionServiceMock{}, &seedServiceMock{}, &salesClientMock{pieChartErr: utils.ServiceUnavailable("busy")}, nil, 0)

		_, err := ctrl.GetFinalResponse(context.Background(), "")

		var httpErr *utils.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
	})
}

// blockingTransactionService holds GetStatistics until release is closed.
type blockingTransactionService struct {
	transactionServiceMock
	started chan struct{}
	release chan struct{}
}

func (m *blockingTransactionService) GetStatistics(ctx context.Context, month string) (*schemas.StatisticsResponse, error) {
	m.calls.Add(1)
	select {
	case m.started <- struct{}{}:
	default:
	}
	<-m.release
	return &schemas.StatisticsResponse{TotalSoldItems: 1}, nil
}

func TestReadOverlappingInitializeIsNotCached(t *testing.T) {
	txService := &blockingTransactionService{started: make(chan struct{}, 1), release: make(chan struct{})}
	cache := utils.NewMemoryCache()
	ctrl := controllers.NewController(txService, &seedServiceMock{}, nil, &salesClientMock{}, cache, time.Minute)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.GetStatistics(ctx, "")
		done <- err
	}()

	select {
	case <-txService.started:
	case <-time.After(5 * time.Second):
		t.Fatal("expected statistics read to start")
	}

	_, err := ctrl.Initialize(ctx)
	require.NoError(t, err)
	close(txService.release)
	require.NoError(t, <-done)

	var cachedStats schemas.StatisticsResponse
	found, err := cache.Get(ctx, "statistics:", &cachedStats)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, cache.Size())
}
