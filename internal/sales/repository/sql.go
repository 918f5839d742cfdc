package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jith-01/Billing-Software-amd/internal/model"
)

// Day bounds go to the store as text: sqlite compares it with the stored
// timestamp text, postgres and mysql coerce it to a timestamp. bill_date
// holds the terminal's local wall clock, so the bounds are local days.
const dayFormat = "2006-01-02"

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) DailySummary(ctx context.Context, day time.Time) ([]model.SalesLine, decimal.Decimal, error) {
	const op = "sales.DailySummary"

	from := day.Format(dayFormat)
	to := day.AddDate(0, 0, 1).Format(dayFormat)

	lines := []model.SalesLine{}
	query := r.DB.Rebind(`
		SELECT bi.item_name AS item_name,
			SUM(bi.quantity) AS total_quantity,
			ROUND(SUM(bi.quantity * bi.unit_price), 2) AS total_revenue
		FROM bill_items bi
		JOIN bills b ON b.bill_id = bi.bill_id
		WHERE b.bill_date >= ? AND b.bill_date < ?
		GROUP BY bi.item_name
		ORDER BY bi.item_name
	`)
	if err := r.DB.SelectContext(ctx, &lines, query, from, to); err != nil {
		return []model.SalesLine{}, decimal.Zero, model.NewStoreError(op, err)
	}

	// sqlite keeps DECIMAL columns as REAL, so sums are rounded to cents
	var total decimal.Decimal
	query = r.DB.Rebind(`SELECT COALESCE(ROUND(SUM(total_amount), 2), 0) FROM bills WHERE bill_date >= ? AND bill_date < ?`)
	if err := r.DB.GetContext(ctx, &total, query, from, to); err != nil {
		return []model.SalesLine{}, decimal.Zero, model.NewStoreError(op, err)
	}

	return lines, total, nil
}
