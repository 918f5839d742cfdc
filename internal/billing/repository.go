package billing

import (
	"context"

	"github.com/jith-01/Billing-Software-amd/internal/model"
)

type Repository interface {
	// CreateWithItems writes the bill header, its lines and the final total
	// as one transaction. Nothing is visible to other readers unless every
	// step succeeds.
	CreateWithItems(ctx context.Context, items []model.BillItem) (*model.Bill, error)
	FindByID(ctx context.Context, id int64) (*model.Bill, error)
}
