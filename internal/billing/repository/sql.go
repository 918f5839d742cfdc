package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jith-01/Billing-Software-amd/internal/database"
	"github.com/jith-01/Billing-Software-amd/internal/model"
)

// billDateLayout is how bill_date is written. The daily report matches
// it against day bounds in the same layout.
const billDateLayout = "2006-01-02 15:04:05"

type SQLRepository struct {
	DB *sqlx.DB
	// Now stamps new bills. Its location decides which calendar day a bill
	// belongs to.
	Now func() time.Time
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db, Now: time.Now}
}

func (r *SQLRepository) CreateWithItems(ctx context.Context, items []model.BillItem) (*model.Bill, error) {
	const op = "billing.CreateWithItems"

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, model.NewStoreError(op, err)
	}
	defer tx.Rollback()

	// 1. Header with a zero total, stamped with the terminal's wall clock
	billDate := r.Now().Truncate(time.Second)
	id, err := database.InsertID(ctx, tx, `INSERT INTO bills (total_amount, bill_date) VALUES (?, ?)`, "bill_id",
		decimal.Zero, billDate.Format(billDateLayout))
	if err != nil {
		return nil, model.NewStoreError(op, err)
	}

	// 2. Lines
	lines := make([]model.BillItem, len(items))
	total := decimal.Zero
	insertLine := tx.Rebind(`INSERT INTO bill_items (bill_id, item_name, quantity, unit_price) VALUES (?, ?, ?, ?)`)
	for i, it := range items {
		it.BillID = id
		if _, err := tx.ExecContext(ctx, insertLine, it.BillID, it.ItemName, it.Quantity, it.UnitPrice); err != nil {
			return nil, model.NewStoreError(op, err)
		}
		total = total.Add(it.LineTotal())
		lines[i] = it
	}

	// 3. Final total
	updateTotal := tx.Rebind(`UPDATE bills SET total_amount = ? WHERE bill_id = ?`)
	if _, err := tx.ExecContext(ctx, updateTotal, total, id); err != nil {
		return nil, model.NewStoreError(op, err)
	}

	bill := model.Bill{ID: id, TotalAmount: total, BillDate: billDate, Items: lines}

	// 4. Commit
	if err := tx.Commit(); err != nil {
		return nil, model.NewStoreError(op, err)
	}

	return &bill, nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*model.Bill, error) {
	const op = "billing.FindByID"

	var bill model.Bill
	query := r.DB.Rebind(`SELECT bill_id, total_amount, bill_date FROM bills WHERE bill_id = ?`)
	if err := r.DB.GetContext(ctx, &bill, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrBillNotFound
		}
		return nil, model.NewStoreError(op, err)
	}
	bill.BillDate = wallClock(bill.BillDate, r.Now().Location())

	bill.Items = []model.BillItem{}
	query = r.DB.Rebind(`SELECT bill_id, item_name, quantity, unit_price FROM bill_items WHERE bill_id = ?`)
	if err := r.DB.SelectContext(ctx, &bill.Items, query, id); err != nil {
		return nil, model.NewStoreError(op, err)
	}

	return &bill, nil
}

// wallClock reads a stored timestamp, which drivers hand back labelled UTC,
// as the wall clock it was written in.
func wallClock(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
