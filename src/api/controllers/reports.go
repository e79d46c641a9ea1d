package controllers

import (
	"context"
	"io"

	"salesboard/src/schemas"

	"github.com/xuri/excelize/v2"
)

const (
	ReportFormatXLSX = "xlsx"
	ReportFormatHTML = "html"
)

type ReportsControllerI interface {
	GenerateXLSXReport(ctx context.Context, month string) (*excelize.File, error)
	RenderHTMLReport(ctx context.Context, w io.Writer, month string) error
	GetSeedRuns(ctx context.Context, limit int) ([]schemas.SeedRun, error)
}

func (c *Controller) GenerateXLSXReport(ctx context.Context, month string) (*excelize.File, error) {
	report, err := c.TransactionService.GetCombined(ctx, month)
	if err != nil {
		return nil, err
	}
	return c.ReportService.GenerateXLSXReport(report, month)
}

func (c *Controller) RenderHTMLReport(ctx context.Context, w io.Writer, month string) error {
	report, err := c.TransactionService.GetCombined(ctx, month)
	if err != nil {
		return err
	}
	return c.ReportService.RenderHTMLReport(w, report, month)
}

func (c *Controller) GetSeedRuns(ctx context.Context, limit int) ([]schemas.SeedRun, error) {
	return c.SeedService.ListRuns(ctx, limit)
}
