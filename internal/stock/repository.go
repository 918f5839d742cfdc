package stock

import (
	"context"

	"github.com/jith-01/Billing-Software-amd/internal/model"
)

type Repository interface {
	// FindAll returns the whole catalog in store order, never nil.
	FindAll(ctx context.Context) ([]model.StockItem, error)
	// Create inserts one row and returns the row id the store assigned, or
	// 0 when the store assigns none.
	Create(ctx context.Context, item *model.StockItem) (int64, error)
}
