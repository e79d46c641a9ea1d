package salesapi

import (
	"context"
	"net/url"
	"time"

	"salesboard/src/schemas"
	"salesboard/src/utils/requests"
)

// SalesAPIClientI reads the aggregate endpoints of a running salesboard API.
type SalesAPIClientI interface {
	GetStatistics(ctx context.Context, month string) (*schemas.StatisticsResponse, error)
	GetBarChart(ctx context.Context, month string) (schemas.BarChartResponse, error)
	GetPieChart(ctx context.Context, month string) (schemas.PieChartResponse, error)
}

type SalesAPIClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a client for the API served at baseURL.
func NewClient(baseURL string, timeout time.Duration) *SalesAPIClient {
	return &SalesAPIClient{
		API:     requests.NewExternalAPIService(timeout),
		BaseURL: baseURL,
	}
}

func monthParams(month string) url.Values {
	params := url.Values{}
	params.Set("month", month)
	return params
}

// GetStatistics calls GET /api/statistics
func (c *SalesAPIClient) GetStatistics(ctx context.Context, month string) (*schemas.StatisticsResponse, error) {
	var statistics schemas.StatisticsResponse
	if err := c.API.GetJSON(ctx, c.BaseURL+"/api/statistics", monthParams(month), &statistics); err != nil {
		return nil, err
	}
	return &statistics, nil
}

// GetBarChart calls GET /api/bar_chart
func (c *SalesAPIClient) GetBarChart(ctx context.Context, month string) (schemas.BarChartResponse, error) {
	var barChart schemas.BarChartResponse
	if err := c.API.GetJSON(ctx, c.BaseURL+"/api/bar_chart", monthParams(month), &barChart); err != nil {
		return nil, err
	}
	return barChart, nil
}

// GetPieChart calls GET /api/pie_chart
func (c *SalesAPIClient) GetPieChart(ctx context.Context, month string) (schemas.PieChartResponse, error) {
	var pieChart schemas.PieChartResponse
	if err := c.API.GetJSON(ctx, c.BaseURL+"/api/pie_chart", monthParams(month), &pieChart); err != nil {
		return nil, err
	}
	return pieChart, nil
}
