package stock

import (
	"context"

	"github.com/jith-01/Billing-Software-amd/internal/model"
	"github.com/jith-01/Billing-Software-amd/internal/stock/dto"
)

type UseCase interface {
	ListItems(ctx context.Context) ([]model.StockItem, error)
	Listing(ctx context.Context) (*dto.Listing, error)
	AddItem(ctx context.Context, input *dto.AddItemInput) (*dto.AddItemOutput, error)
}
