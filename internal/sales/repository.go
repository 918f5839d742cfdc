package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jith-01/Billing-Software-amd/internal/model"
)

type Repository interface {
	// DailySummary aggregates the bills dated on day's calendar date: one
	// line per item name, ordered by name, plus the sum of the bill totals.
	DailySummary(ctx context.Context, day time.Time) ([]model.SalesLine, decimal.Decimal, error)
}
