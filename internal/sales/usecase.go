package sales

import (
	"context"

	"github.com/jith-01/Billing-Software-amd/internal/model"
)

type UseCase interface {
	// DailyReport takes a YYYY-MM-DD date.
	DailyReport(ctx context.Context, date string) (*model.SalesReport, error)
}
