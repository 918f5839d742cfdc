package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
)

var schemas = map[Dialect][]string{
	Postgres: {
		`CREATE TABLE IF NOT EXISTS stock (
			Slno BIGINT NOT NULL UNIQUE,
			ItemName TEXT NOT NULL,
			Rate NUMERIC(12,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bills (
			bill_id BIGSERIAL PRIMARY KEY,
			total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			bill_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS bill_items (
			bill_id BIGINT NOT NULL REFERENCES bills(bill_id),
			item_name TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity >= 0),
			unit_price NUMERIC(12,2) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bills_bill_date ON bills (bill_date)`,
	},
	MySQL: {
		`CREATE TABLE IF NOT EXISTS stock (
			Slno BIGINT NOT NULL UNIQUE,
			ItemName VARCHAR(255) NOT NULL,
			Rate DECIMAL(12,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bills (
			bill_id BIGINT AUTO_INCREMENT PRIMARY KEY,
			total_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			bill_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_bills_bill_date (bill_date)
		)`,
		`CREATE TABLE IF NOT EXISTS bill_items (
			bill_id BIGINT NOT NULL,
			item_name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL CHECK (quantity >= 0),
			unit_price DECIMAL(12,2) NOT NULL,
			FOREIGN KEY (bill_id) REFERENCES bills(bill_id)
		)`,
	},
	SQLite: {
		`CREATE TABLE IF NOT EXISTS stock (
			Slno INTEGER NOT NULL UNIQUE,
			ItemName TEXT NOT NULL,
			Rate DECIMAL(12,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bills (
			bill_id INTEGER PRIMARY KEY AUTOINCREMENT,
			total_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			bill_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS bill_items (
			bill_id INTEGER NOT NULL REFERENCES bills(bill_id),
			item_name TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity >= 0),
			unit_price DECIMAL(12,2) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bills_bill_date ON bills (bill_date)`,
	},
}

// Migrate creates the stock, bills and bill_items tables when missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	dialect := DialectOf(db)
	stmts, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", dialect)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", dialect, err)
		}
	}

	return tx.Commit()
}

// MigrateWithRetry keeps calling Migrate on b's schedule until it succeeds
// or ctx ends. notify, when set, sees every failed attempt.
func MigrateWithRetry(ctx context.Context, db *sqlx.DB, b backoff.BackOff, notify func(error, time.Duration)) error {
	return backoff.RetryNotify(func() error {
		return Migrate(ctx, db)
	}, backoff.WithContext(b, ctx), notify)
}

// RetrySchedule is the backoff used for a store that is not up yet. It
// never gives up on its own.
func RetrySchedule() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}
