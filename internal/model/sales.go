package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesLine aggregates every bill line sold under one item name on a day.
type SalesLine struct {
	ItemName string          `db:"item_name" json:"item_name"`
	Quantity int64           `db:"total_quantity" json:"total_quantity"`
	Revenue  decimal.Decimal `db:"total_revenue" json:"total_revenue"`
}

type SalesReport struct {
	Date       time.Time       `json:"date"`
	Lines      []SalesLine     `json:"lines"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Text       string          `json:"text"`
}
