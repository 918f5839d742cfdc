package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// InsertID runs an INSERT and returns the id the store assigned to
// idColumn. Postgres reports it through RETURNING, the others through
// LastInsertId. query uses ? placeholders.
func InsertID(ctx context.Context, ext sqlx.ExtContext, query, idColumn string, args ...any) (int64, error) {
	query = ext.Rebind(query)

	if DialectOf(ext) == Postgres {
		var id int64
		err := ext.QueryRowxContext(ctx, query+" RETURNING "+idColumn, args...).Scan(&id)
		return id, err
	}

	res, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
