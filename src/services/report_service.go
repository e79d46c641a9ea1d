package services

import (
	"fmt"
	"io"
	"sort"

	"salesboard/src/schemas"
	"salesboard/src/utils/render"

	"github.com/xuri/excelize/v2"
)

const (
	statisticsSheet = "Statistics"
	barChartSheet   = "Bar Chart"
	pieChartSheet   = "Pie Chart"
)

type ReportServiceI interface {
	GenerateXLSXReport(report *schemas.FinalResponse, month string) (*excelize.File, error)
	RenderHTMLReport(w io.Writer, report *schemas.FinalResponse, month string) error
}

type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

func monthLabel(month string) string {
	if month == "" {
		return "All months"
	}
	return "Month: " + month
}

// pieSeries orders categories by count, then by name.
func pieSeries(pieChart schemas.PieChartResponse) render.Series {
	categories := make([]string, 0, len(pieChart))
	for category := range pieChart {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if pieChart[categories[i]] != pieChart[categories[j]] {
			return pieChart[categories[i]] > pieChart[categories[j]]
		}
		return categories[i] < categories[j]
	})

	series := render.Series{Labels: categories, Values: make([]float64, 0, len(categories))}
	for _, category := range categories {
		series.Values = append(series.Values, float64(pieChart[category]))
	}
	return series
}

func barSeries(barChart schemas.BarChartResponse) render.Series {
	series := render.Series{Labels: PriceRanges, Values: make([]float64, 0, len(PriceRanges))}
	for _, label := range PriceRanges {
		series.Values = append(series.Values, float64(barChart[label]))
	}
	return series
}

// GenerateXLSXReport builds a workbook with one sheet per aggregate.
func (rs *ReportService) GenerateXLSXReport(report *schemas.FinalResponse, month string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", statisticsSheet); err != nil {
		return nil, err
	}

	statisticsRows := [][]interface{}{
		{monthLabel(month), ""},
		{"Metric", "Value"},
		{"Total sale amount", report.Statistics.TotalSaleAmount},
		{"Total sold items", report.Statistics.TotalSoldItems},
		{"Total not sold items", report.Statistics.TotalNotSoldItems},
	}
	if err := rs.writeRows(f, statisticsSheet, statisticsRows); err != nil {
		return nil, err
	}

	bars := barSeries(report.BarChart)
	if err := rs.writeSeriesSheet(f, barChartSheet, month, "Price range", bars); err != nil {
		return nil, err
	}

	pie := pieSeries(report.PieChart)
	if err := rs.writeSeriesSheet(f, pieChartSheet, month, "Category", pie); err != nil {
		return nil, err
	}

	if err := rs.applyHeaderStyle(f); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func (rs *ReportService) writeSeriesSheet(f *excelize.File, sheetName string, month string, header string, series render.Series) error {
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}
	rows := [][]interface{}{
		{monthLabel(month), ""},
		{header, "Items"},
	}
	for i, label := range series.Labels {
		rows = append(rows, []interface{}{label, int(series.Values[i])})
	}
	return rs.writeRows(f, sheetName, rows)
}

func (rs *ReportService) writeRows(f *excelize.File, sheetName string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetName, "A", "B", 24)
}

func (rs *ReportService) applyHeaderStyle(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6E6"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	for _, sheetName := range f.GetSheetList() {
		if err := f.SetCellStyle(sheetName, "A2", "B2", headerStyle); err != nil {
			return fmt.Errorf("style %s: %w", sheetName, err)
		}
	}
	return nil
}

// RenderHTMLReport writes a page with the price range bar chart and the category pie chart.
func (rs *ReportService) RenderHTMLReport(w io.Writer, report *schemas.FinalResponse, month string) error {
	subtitle := monthLabel(month)
	bar := render.NewBarGraph("Transactions by price range", subtitle, barSeries(report.BarChart))
	pie := render.NewPieGraph("Transactions by category", subtitle, pieSeries(report.PieChart))
	return render.RenderPage(w, "Sales report", bar, pie)
}
