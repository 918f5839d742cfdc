package dto

import "github.com/jith-01/Billing-Software-amd/internal/model"

type Listing struct {
	Items []model.StockItem `json:"items"`
	Text  string            `json:"text"`
}

type AddItemOutput struct {
	Item    model.StockItem `json:"item"`
	RowID   int64           `json:"row_id,omitempty"`
	Listing *Listing        `json:"listing"`
}
