package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story-api/internal/domain/entity"
	"story-api/internal/infra/adapter/persistence/sqlite"
	"story-api/internal/repository"
	"story-api/internal/repository/repotest"
)

/* ──────────────────────────── helpers ──────────────────────────── */

func newRepo(t *testing.T) repository.StoryRepository {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return sqlite.NewStoryRepo(db)
}

/* ──────────────────────────── contract ──────────────────────────── */

func TestStoryRepo_Contract(t *testing.T) {
	repotest.Run(t, repotest.Harness{
		New:       newRepo,
		UnknownID: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		InvalidID: "not-a-uuid",
	})
}

func TestStoryRepo_StatsLatestFromAggregate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	var newest *entity.Story
	for i := range 3 {
		st := &entity.Story{Title: fmt.Sprintf("Tale %d", i), Writer: "Ann", Content: "Once"}
		require.NoError(t, repo.Create(ctx, st))
		newest = st
		time.Sleep(2 * time.Millisecond)
	}

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalStories)
	require.NotNil(t, stats.LatestStoryAt)
	assert.True(t, newest.CreatedAt.Equal(*stats.LatestStoryAt),
		"latest = %v, want %v", *stats.LatestStoryAt, newest.CreatedAt)
	assert.Equal(t, time.UTC, stats.LatestStoryAt.Location())
}
