package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jith-01/Billing-Software-amd/internal/logger"
	"github.com/jith-01/Billing-Software-amd/internal/model"
	"github.com/jith-01/Billing-Software-amd/internal/render"
	"github.com/jith-01/Billing-Software-amd/internal/stock"
	"github.com/jith-01/Billing-Software-amd/internal/stock/dto"
)

type stockUseCase struct {
	repo   stock.Repository
	logger logger.ZapLogger
}

func NewStockUseCase(repo stock.Repository, log logger.ZapLogger) stock.UseCase {
	return &stockUseCase{
		repo:   repo,
		logger: log,
	}
}

// ListItems degrades to an empty catalog when the store fails; the error
// is still returned so the caller can tell the operator.
func (uc *stockUseCase) ListItems(ctx context.Context) ([]model.StockItem, error) {
	items, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("failed to fetch stock items", zap.Error(err))
		return []model.StockItem{}, err
	}
	return items, nil
}

func (uc *stockUseCase) Listing(ctx context.Context) (*dto.Listing, error) {
	items, err := uc.ListItems(ctx)
	return &dto.Listing{Items: items, Text: render.StockListing(items)}, err
}

func (uc *stockUseCase) AddItem(ctx context.Context, input *dto.AddItemInput) (*dto.AddItemOutput, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	slNo, err := strconv.ParseInt(input.SlNo, 10, 64)
	if err != nil {
		return nil, model.NewValidationError("sl_no", "Sl No is out of range.")
	}
	rate, err := decimal.NewFromString(input.Rate)
	if err != nil {
		return nil, model.NewValidationError("rate", "Rate is out of range.")
	}

	item := model.StockItem{SlNo: slNo, ItemName: input.ItemName, Rate: rate}

	rowID, err := uc.repo.Create(ctx, &item)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateItem) {
			uc.logger.Warn("duplicate stock serial number", zap.Int64("sl_no", slNo))
		} else {
			uc.logger.Error("failed to add stock item", zap.Int64("sl_no", slNo), zap.Error(err))
		}
		return nil, err
	}

	uc.logger.Info("stock item added",
		zap.Int64("sl_no", slNo),
		zap.String("item_name", item.ItemName),
		zap.String("rate", item.Rate.StringFixed(2)),
	)

	// The insert already succeeded; a failed refresh only leaves the listing empty.
	listing, _ := uc.Listing(ctx)

	return &dto.AddItemOutput{
		Item:    item,
		RowID:   rowID,
		Listing: listing,
	}, nil
}
