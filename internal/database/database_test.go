package database_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jith-01/Billing-Software-amd/internal/database"
	"github.com/jith-01/Billing-Software-amd/internal/database/dbtest"
)

func TestParseDialect(t *testing.T) {
	cases := map[string]database.Dialect{
		"postgres":   database.Postgres,
		"PostgreSQL": database.Postgres,
		"pgx":        database.Postgres,
		"mysql":      database.MySQL,
		"mariadb":    database.MySQL,
		" sqlite ":   database.SQLite,
		"sqlite3":    database.SQLite,
	}
	for in, want := range cases {
		got, err := database.ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := database.ParseDialect("oracle")
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &database.Config{
		Host:           "db.local",
		User:           "cashier",
		Password:       "secret",
		DBName:         "billing",
		ConnectTimeout: 5 * time.Second,
		Path:           "/var/lib/billing.db",
	}

	pg, err := database.DSN(database.Postgres, cfg)
	require.NoError(t, err)
	assert.Equal(t, "host=db.local port=5432 user=cashier password=secret dbname=billing sslmode=disable connect_timeout=5", pg)

	my, err := database.DSN(database.MySQL, cfg)
	require.NoError(t, err)
	parsed, err := mysql.ParseDSN(my)
	require.NoError(t, err)
	assert.Equal(t, "db.local:3306", parsed.Addr)
	assert.Equal(t, "billing", parsed.DBName)
	assert.True(t, parsed.ParseTime)

	lite, err := database.DSN(database.SQLite, cfg)
	require.NoError(t, err)
	assert.Contains(t, lite, "file:/var/lib/billing.db?")
	assert.Contains(t, lite, "foreign_keys(1)")

	_, err = database.DSN(database.SQLite, &database.Config{})
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := dbtest.NewSQLite(t)
	require.NoError(t, database.Migrate(context.Background(), db))
	assert.Equal(t, 0, dbtest.Count(t, db, "stock"))
	assert.Equal(t, 0, dbtest.Count(t, db, "bills"))
	assert.Equal(t, 0, dbtest.Count(t, db, "bill_items"))
}

func TestInsertIDUsesLastInsertID(t *testing.T) {
	db := dbtest.NewSQLite(t)
	ctx := context.Background()

	first, err := database.InsertID(ctx, db, `INSERT INTO bills (total_amount) VALUES (?)`, "bill_id", 0)
	require.NoError(t, err)
	second, err := database.InsertID(ctx, db, `INSERT INTO bills (total_amount) VALUES (?)`, "bill_id", 0)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestIsUniqueViolation(t *testing.T) {
	db := dbtest.NewSQLite(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO stock (Slno, ItemName, Rate) VALUES (1, 'Rice', 50)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO stock (Slno, ItemName, Rate) VALUES (1, 'Sugar', 40)`)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	_, err = db.ExecContext(ctx, `INSERT INTO bill_items (bill_id, item_name, quantity, unit_price) VALUES (1, 'Rice', -1, 50)`)
	require.Error(t, err)
	assert.False(t, database.IsUniqueViolation(err))

	assert.True(t, database.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, database.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.True(t, database.IsUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, database.IsUniqueViolation(errors.New("boom")))
	assert.False(t, database.IsUniqueViolation(nil))
}

func TestOpenDoesNotConnect(t *testing.T) {
	db, err := database.Open(&database.Config{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "missing", "billing.db"),
	})
	require.NoError(t, err)
	defer db.Close()

	err = database.Ping(context.Background(), db, time.Second)
	assert.Error(t, err)
}

func TestMigrateWithRetryWaitsForStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "later")
	db, err := database.Open(&database.Config{
		Driver:       "sqlite",
		Path:         filepath.Join(dir, "billing.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	defer db.Close()

	// the store becomes reachable after the first failed attempt
	failures := 0
	notify := func(err error, _ time.Duration) {
		failures++
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}

	err = database.MigrateWithRetry(context.Background(), db, backoff.NewConstantBackOff(10*time.Millisecond), notify)
	require.NoError(t, err)
	assert.Equal(t, 1, failures)
	assert.Zero(t, dbtest.Count(t, db, "bills"))
}

func TestMigrateWithRetryStopsWithContext(t *testing.T) {
	db, err := database.Open(&database.Config{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "missing", "billing.db"),
	})
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = database.MigrateWithRetry(ctx, db, backoff.NewConstantBackOff(10*time.Millisecond), nil)
	assert.Error(t, err)
}
