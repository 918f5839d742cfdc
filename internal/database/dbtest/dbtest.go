// Package dbtest opens throwaway migrated stores for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/jith-01/Billing-Software-amd/internal/database"
)

// NewSQLite returns a migrated sqlite store in a temp dir, closed on cleanup.
func NewSQLite(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := database.Open(&database.Config{
		Driver:       "sqlite",
		Path:         filepath.Join(t.TempDir(), "billing.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

// InsertBillAt writes a finished bill with an explicit bill_date, for
// reports that depend on the calendar day.
func InsertBillAt(t testing.TB, db *sqlx.DB, billDate string, lines ...Line) int64 {
	t.Helper()
	ctx := context.Background()

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	var total float64
	for _, l := range lines {
		total += float64(l.Quantity) * l.UnitPrice
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO bills (total_amount, bill_date) VALUES (?, ?)`, total, billDate)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	for _, l := range lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO bill_items (bill_id, item_name, quantity, unit_price) VALUES (?, ?, ?, ?)`,
			id, l.ItemName, l.Quantity, l.UnitPrice)
		require.NoError(t, err)
	}

	require.NoError(t, tx.Commit())
	return id
}

type Line struct {
	ItemName  string
	Quantity  int
	UnitPrice float64
}

// Count returns the rows in table.
func Count(t testing.TB, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}
