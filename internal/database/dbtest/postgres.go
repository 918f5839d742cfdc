//go:build integration

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"

	"github.com/jith-01/Billing-Software-amd/internal/database"
)

// NewPostgres starts a throwaway postgres container and returns a migrated
// pool on it. Needs a reachable docker daemon.
func NewPostgres(t testing.TB) *sqlx.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping())

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=billing",
			"POSTGRES_PASSWORD=billing",
			"POSTGRES_DB=billing",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })
	_ = resource.Expire(120)

	db, err := database.Open(&database.Config{
		Driver:         "postgres",
		Host:           "localhost",
		Port:           resource.GetPort("5432/tcp"),
		User:           "billing",
		Password:       "billing",
		DBName:         "billing",
		MaxOpenConns:   1,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pool.MaxWait = time.Minute
	require.NoError(t, pool.Retry(db.Ping), "postgres did not become ready")

	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}
