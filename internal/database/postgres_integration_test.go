//go:build integration

package database_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jith-01/Billing-Software-amd/internal/database"
	"github.com/jith-01/Billing-Software-amd/internal/database/dbtest"
)

func TestPostgresSchemaAndReturning(t *testing.T) {
	db := dbtest.NewPostgres(t)
	ctx := context.Background()

	assert.Equal(t, database.Postgres, database.DialectOf(db))

	id, err := database.InsertID(ctx, db, `INSERT INTO bills (total_amount) VALUES (?)`, "bill_id", 0)
	require.NoError(t, err)
	assert.Positive(t, id)

	next, err := database.InsertID(ctx, db, `INSERT INTO bills (total_amount) VALUES (?)`, "bill_id", 0)
	require.NoError(t, err)
	assert.Greater(t, next, id)

	_, err = db.ExecContext(ctx, `INSERT INTO stock (Slno, ItemName, Rate) VALUES (1, 'Rice', 50)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO stock (Slno, ItemName, Rate) VALUES (1, 'Sugar', 40)`)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err), fmt.Sprintf("%T %v", err, err))

	// second run is a no-op
	require.NoError(t, database.Migrate(ctx, db))
}
