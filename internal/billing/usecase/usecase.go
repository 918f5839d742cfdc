package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/jith-01/Billing-Software-amd/internal/billing"
	"github.com/jith-01/Billing-Software-amd/internal/billing/dto"
	"github.com/jith-01/Billing-Software-amd/internal/logger"
	"github.com/jith-01/Billing-Software-amd/internal/model"
	"github.com/jith-01/Billing-Software-amd/internal/printer"
	"github.com/jith-01/Billing-Software-amd/internal/render"
	"github.com/jith-01/Billing-Software-amd/internal/stock"
)

const receiptTitle = "Receipt"

type billingUseCase struct {
	repo    billing.Repository
	stockUC stock.UseCase
	printer printer.Printer
	logger  logger.ZapLogger

	mu      sync.RWMutex
	catalog []model.StockItem // nil until first loaded
}

func NewBillingUseCase(repo billing.Repository, stockUC stock.UseCase, p printer.Printer, log logger.ZapLogger) billing.UseCase {
	return &billingUseCase{
		repo:    repo,
		stockUC: stockUC,
		printer: p,
		logger:  log,
	}
}

func (uc *billingUseCase) LoadCatalog(ctx context.Context) ([]model.StockItem, error) {
	items, err := uc.stockUC.ListItems(ctx)

	uc.mu.Lock()
	if err != nil {
		// retried by the next bill
		uc.catalog = nil
	} else {
		uc.catalog = items
	}
	uc.mu.Unlock()

	return items, err
}

// Catalog is the snapshot bills are priced against. It is empty until
// LoadCatalog has run.
func (uc *billingUseCase) Catalog() []model.StockItem {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	out := make([]model.StockItem, len(uc.catalog))
	copy(out, uc.catalog)
	return out
}

func (uc *billingUseCase) snapshot(ctx context.Context) ([]model.StockItem, error) {
	uc.mu.RLock()
	loaded := uc.catalog != nil
	uc.mu.RUnlock()

	if !loaded {
		if _, err := uc.LoadCatalog(ctx); err != nil {
			return nil, err
		}
	}
	return uc.Catalog(), nil
}

func (uc *billingUseCase) GenerateBill(ctx context.Context, input *dto.GenerateBillInput) (*model.Receipt, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, model.NewValidationError(firstField(err), "Please enter customer name and ration card number.")
	}

	catalog, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	items, err := priceLines(catalog, input.Quantities)
	if err != nil {
		return nil, err
	}

	text := render.Receipt{
		CustomerName: input.CustomerName,
		RationCard:   input.RationCard,
		Items:        items,
		Total:        model.SumLines(items),
	}.String()

	bill, err := uc.repo.CreateWithItems(ctx, items)
	if err != nil {
		uc.logger.Error("failed to generate and save the bill",
			zap.String("customer_name", input.CustomerName),
			zap.Int("lines", len(items)),
			zap.Error(err),
		)
		return nil, err
	}

	uc.logger.Info("bill saved",
		zap.Int64("bill_id", bill.ID),
		zap.String("total_amount", bill.TotalAmount.StringFixed(2)),
		zap.Int("lines", len(bill.Items)),
	)

	return &model.Receipt{
		BillID:       bill.ID,
		CustomerName: input.CustomerName,
		RationCard:   input.RationCard,
		Items:        bill.Items,
		Total:        bill.TotalAmount,
		Text:         text,
	}, nil
}

// priceLines turns the filled-in quantities into bill lines, in catalog
// order, priced at the snapshot rate. Any bad quantity rejects the whole
// bill.
func priceLines(catalog []model.StockItem, quantities map[string]string) ([]model.BillItem, error) {
	known := make(map[string]bool, len(catalog))
	for _, it := range catalog {
		known[it.ItemName] = true
	}

	var unknown []string
	for name, qty := range quantities {
		if qty != "" && !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, model.NewValidationError(unknown[0], "Unknown item %s.", unknown[0])
	}

	items := []model.BillItem{}
	billed := make(map[string]bool, len(quantities))
	for _, it := range catalog {
		raw := quantities[it.ItemName]
		if raw == "" || billed[it.ItemName] {
			continue
		}
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 0 {
			return nil, model.NewValidationError(it.ItemName, "Invalid quantity for %s.", it.ItemName)
		}
		billed[it.ItemName] = true
		items = append(items, model.BillItem{
			ItemName:  it.ItemName,
			Quantity:  qty,
			UnitPrice: it.Rate,
		})
	}

	if len(items) == 0 {
		return nil, model.ErrEmptyBill
	}
	return items, nil
}

func firstField(err error) string {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		if _, ok := verrs["customer_name"]; !ok {
			return "ration_card"
		}
	}
	return "customer_name"
}

func (uc *billingUseCase) PrintReceipt(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return model.ErrNothingToPrint
	}

	job := printer.NewJob(receiptTitle, text)
	if err := uc.printer.Print(ctx, job); err != nil {
		uc.logger.Error("failed to print receipt", zap.String("job_id", job.ID), zap.Error(err))
		return fmt.Errorf("%w: %w", model.ErrPrint, err)
	}

	uc.logger.Info("receipt sent to the printer", zap.String("job_id", job.ID), zap.Int("lines", len(job.Lines)))
	return nil
}

func (uc *billingUseCase) GetBill(ctx context.Context, id int64) (*model.Bill, error) {
	bill, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrBillNotFound) {
			uc.logger.Error("failed to fetch bill", zap.Int64("bill_id", id), zap.Error(err))
		}
		return nil, err
	}
	return bill, nil
}
