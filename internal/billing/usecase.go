package billing

import (
	"context"

	"github.com/jith-01/Billing-Software-amd/internal/billing/dto"
	"github.com/jith-01/Billing-Software-amd/internal/model"
)

type UseCase interface {
	// LoadCatalog refreshes the price list bills are priced against.
	LoadCatalog(ctx context.Context) ([]model.StockItem, error)
	Catalog() []model.StockItem
	GenerateBill(ctx context.Context, input *dto.GenerateBillInput) (*model.Receipt, error)
	PrintReceipt(ctx context.Context, text string) error
	GetBill(ctx context.Context, id int64) (*model.Bill, error)
}
