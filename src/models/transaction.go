package models

import (
	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimals kept for prices, matching numeric(12,2).
const PriceScale = 2

type ProductTransaction struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	DateOfSale string          `gorm:"column:date_of_sale;size:40" json:"dateOfSale"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(12,2)" json:"price"`
	Category   string          `gorm:"column:category;size:50" json:"category"`
	Sold       bool            `gorm:"column:sold" json:"sold"`
}

func (ProductTransaction) TableName() string {
	return "product_transactions"
}
