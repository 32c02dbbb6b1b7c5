//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"story-api/internal/infra/adapter/persistence/postgres"
	"story-api/internal/infra/db"
	"story-api/internal/repository"
	"story-api/internal/repository/repotest"
)

func TestStoryRepo_Contract(t *testing.T) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("stories"),
		tcpostgres.WithUsername("story"),
		tcpostgres.WithPassword("story"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := db.Open(ctx, dsn, db.DefaultConnectionConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.MigrateUp(conn))
	// second run is a no-op
	require.NoError(t, db.MigrateUp(conn))

	repotest.Run(t, repotest.Harness{
		New: func(t *testing.T) repository.StoryRepository {
			truncate(t, conn)
			return postgres.NewStoryRepo(conn)
		},
		UnknownID: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		InvalidID: "not-a-uuid",
	})
}

func truncate(t *testing.T, conn *sql.DB) {
	t.Helper()
	_, err := conn.Exec(`TRUNCATE stories`)
	require.NoError(t, err)
}
