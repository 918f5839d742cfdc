package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jith-01/Billing-Software-amd/internal/database"
	"github.com/jith-01/Billing-Software-amd/internal/model"
)

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]model.StockItem, error) {
	items := []model.StockItem{}
	query := `SELECT Slno AS sl_no, ItemName AS item_name, Rate AS rate FROM stock`
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return []model.StockItem{}, model.NewStoreError("stock.FindAll", err)
	}
	return items, nil
}

func (r *SQLRepository) Create(ctx context.Context, item *model.StockItem) (int64, error) {
	query := r.DB.Rebind(`INSERT INTO stock (Slno, ItemName, Rate) VALUES (?, ?, ?)`)

	res, err := r.DB.ExecContext(ctx, query, item.SlNo, item.ItemName, item.Rate)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, model.ErrDuplicateItem
		}
		return 0, model.NewStoreError("stock.Create", err)
	}

	// stock has no generated key; pgx never reports one and mysql reports 0.
	if database.DialectOf(r.DB) == database.Postgres {
		return 0, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, nil
	}
	return id, nil
}
