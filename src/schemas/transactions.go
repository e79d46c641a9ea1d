package schemas

import "github.com/shopspring/decimal"

// SeedTransaction is one item of the remote seed dataset.
type SeedTransaction struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Sold        bool            `json:"sold"`
	DateOfSale  string          `json:"dateOfSale"`
}

type StatisticsResponse struct {
	TotalSaleAmount   float64 `json:"total_sale_amount"`
	TotalSoldItems    int     `json:"total_sold_items"`
	TotalNotSoldItems int     `json:"total_not_sold_items"`
}

// BarChartResponse maps a price range label to the number of records in it.
type BarChartResponse map[string]int

// PieChartResponse maps a category to the number of records in it.
type PieChartResponse map[string]int

type FinalResponse struct {
	Statistics StatisticsResponse `json:"statistics"`
	BarChart   BarChartResponse   `json:"bar_chart"`
	PieChart   PieChartResponse   `json:"pie_chart"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Records int    `json:"records,omitempty"`
}
