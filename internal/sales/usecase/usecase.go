package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jith-01/Billing-Software-amd/internal/logger"
	"github.com/jith-01/Billing-Software-amd/internal/model"
	"github.com/jith-01/Billing-Software-amd/internal/render"
	"github.com/jith-01/Billing-Software-amd/internal/sales"
)

const dateLayout = "2006-01-02"

type salesUseCase struct {
	repo   sales.Repository
	logger logger.ZapLogger
}

func NewSalesUseCase(repo sales.Repository, log logger.ZapLogger) sales.UseCase {
	return &salesUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *salesUseCase) DailyReport(ctx context.Context, date string) (*model.SalesReport, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, model.NewValidationError("date", "Please enter a date.")
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, model.NewValidationError("date", "Date must be in YYYY-MM-DD format.")
	}

	lines, total, err := uc.repo.DailySummary(ctx, day)
	if err != nil {
		uc.logger.Error("failed to fetch sales data", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	uc.logger.Debug("sales report",
		zap.String("date", date),
		zap.Int("items", len(lines)),
		zap.String("grand_total", total.StringFixed(2)),
	)

	return &model.SalesReport{
		Date:       day,
		Lines:      lines,
		GrandTotal: total,
		Text:       render.SalesTable(date, lines, total),
	}, nil
}
