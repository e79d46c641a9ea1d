package services_test

import (
	"testing"

	"salesboard/src/models"
	"salesboard/src/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func tx(price string, category string, sold bool) models.ProductTransaction {
	return models.ProductTransaction{
		DateOfSale: "2021-11-27T20:29:54+05:30",
		Price:      decimal.RequireFromString(price),
		Category:   category,
		Sold:       sold,
	}
}

func sumCounts(counts map[string]int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

func TestPriceRangeIndex(t *testing.T) {
	cases := map[string]int{
		"-5":     0,
		"0":      0,
		"99.99":  0,
		"100":    0,
		"100.01": 1,
		"100.5":  1,
		"200":    1,
		"250":    2,
		"899.99": 8,
		"900":    8,
		"900.01": 9,
		"901":    9,
		"15000":  9,
	}
	for price, want := range cases {
		assert.Equal(t, want, services.PriceRangeIndex(decimal.RequireFromString(price)), "price %s", price)
	}
}

func TestComputeStatistics(t *testing.T) {
	transactions := []models.ProductTransaction{
		tx("329.85", "men's clothing", false),
		tx("44.6", "men's clothing", true),
		tx("0.1", "jewelery", true),
		tx("0.2", "jewelery", true),
	}

	stats := services.ComputeStatistics(transactions)

	assert.Equal(t, 44.9, stats.TotalSaleAmount)
	assert.Equal(t, 3, stats.TotalSoldItems)
	assert.Equal(t, 1, stats.TotalNotSoldItems)
	assert.Equal(t, len(transactions), stats.TotalSoldItems+stats.TotalNotSoldItems)
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := services.ComputeStatistics(nil)
	assert.Zero(t, stats.TotalSaleAmount)
	assert.Zero(t, stats.TotalSoldItems)
	assert.Zero(t, stats.TotalNotSoldItems)
}

func TestComputeBarChart(t *testing.T) {
	transactions := []models.ProductTransaction{
		tx("100", "a", true),
		tx("100.5", "a", true),
		tx("150", "a", false),
		tx("450", "b", false),
		tx("900", "b", true),
		tx("901", "c", false),
		tx("5000", "c", false),
	}

	barChart := services.ComputeBarChart(transactions)

	assert.Len(t, barChart, len(services.PriceRanges))
	assert.Equal(t, 1, barChart["0-100"])
	assert.Equal(t, 2, barChart["101-200"])
	assert.Equal(t, 0, barChart["201-300"])
	assert.Equal(t, 1, barChart["401-500"])
	assert.Equal(t, 1, barChart["801-900"])
	assert.Equal(t, 2, barChart["901-above"])
	assert.Equal(t, len(transactions), sumCounts(barChart))
}

func TestComputePieChart(t *testing.T) {
	transactions := []models.ProductTransaction{
		tx("1", "electronics", true),
		tx("2", "electronics", false),
		tx("3", "jewelery", true),
	}

	pieChart := services.ComputePieChart(transactions)

	assert.Equal(t, map[string]int{"electronics": 2, "jewelery": 1}, map[string]int(pieChart))
	assert.Equal(t, len(transactions), sumCounts(pieChart))
	assert.Empty(t, services.ComputePieChart(nil))
}
