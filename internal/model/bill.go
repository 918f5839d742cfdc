package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bill struct {
	ID          int64           `db:"bill_id" json:"bill_id"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	BillDate    time.Time       `db:"bill_date" json:"bill_date"`
	Items       []BillItem      `db:"-" json:"items"`
}

// BillItem snapshots the item name and unit price at sale time. It does not
// reference the catalog row, so later rate changes never touch old bills.
type BillItem struct {
	BillID    int64           `db:"bill_id" json:"bill_id"`
	ItemName  string          `db:"item_name" json:"item_name"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
}

func (i BillItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SumLines is the amount a bill made of these lines must carry.
func SumLines(items []BillItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Receipt is a persisted bill together with the customer details the
// operator entered and the rendered text shown to the customer.
type Receipt struct {
	BillID       int64           `json:"bill_id"`
	CustomerName string          `json:"customer_name"`
	RationCard   string          `json:"ration_card"`
	Items        []BillItem      `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Text         string          `json:"text"`
}
