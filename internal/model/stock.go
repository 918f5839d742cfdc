package model

import "github.com/shopspring/decimal"

// StockItem is one catalog row. SlNo is assigned by the operator and is
// unique across the catalog; ItemName is what bills refer to.
type StockItem struct {
	SlNo     int64           `db:"sl_no" json:"sl_no"`
	ItemName string          `db:"item_name" json:"item_name"`
	Rate     decimal.Decimal `db:"rate" json:"rate"`
}
