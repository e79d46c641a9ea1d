package services

import (
	"salesboard/src/models"
	"salesboard/src/schemas"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PriceRanges are the bar chart buckets, in order. Every bucket is closed on
// its upper bound, so 100 falls in "0-100" and 100.5 in "101-200".
var PriceRanges = []string{
	"0-100",
	"101-200",
	"201-300",
	"301-400",
	"401-500",
	"501-600",
	"601-700",
	"701-800",
	"801-900",
	"901-above",
}

var bucketWidth = decimal.NewFromInt(100)

// PriceRangeIndex returns the index in PriceRanges that price belongs to.
func PriceRangeIndex(price decimal.Decimal) int {
	index := int(price.Div(bucketWidth).Ceil().IntPart()) - 1
	if index < 0 {
		return 0
	}
	if index >= len(PriceRanges) {
		return len(PriceRanges) - 1
	}
	return index
}

func ComputeStatistics(transactions []models.ProductTransaction) schemas.StatisticsResponse {
	sold, notSold := lo.FilterReject(transactions, func(t models.ProductTransaction, _ int) bool {
		return t.Sold
	})
	total := lo.Reduce(sold, func(sum decimal.Decimal, t models.ProductTransaction, _ int) decimal.Decimal {
		return sum.Add(t.Price)
	}, decimal.Zero)

	return schemas.StatisticsResponse{
		TotalSaleAmount:   total.InexactFloat64(),
		TotalSoldItems:    len(sold),
		TotalNotSoldItems: len(notSold),
	}
}

// ComputeBarChart counts transactions per price range. All ranges are present.
func ComputeBarChart(transactions []models.ProductTransaction) schemas.BarChartResponse {
	barChart := make(schemas.BarChartResponse, len(PriceRanges))
	for _, label := range PriceRanges {
		barChart[label] = 0
	}
	for _, t := range transactions {
		barChart[PriceRanges[PriceRangeIndex(t.Price)]]++
	}
	return barChart
}

func ComputePieChart(transactions []models.ProductTransaction) schemas.PieChartResponse {
	return lo.CountValuesBy(transactions, func(t models.ProductTransaction) string {
		return t.Category
	})
}
