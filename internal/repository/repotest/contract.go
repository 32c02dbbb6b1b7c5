// Package repotest holds the behavioural test suite every StoryRepository
// adapter runs against a real (or in-memory) store.
package repotest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story-api/internal/domain/entity"
	"story-api/internal/repository"
)

// Harness describes the adapter under test.
type Harness struct {
	// New returns an empty repository. It is called once per subtest.
	New func(t *testing.T) repository.StoryRepository
	// UnknownID is well-formed for the store but never assigned.
	UnknownID string
	// InvalidID is rejected by the store as malformed.
	InvalidID string
}

func newStory(title string) *entity.Story {
	return &entity.Story{Title: title, Writer: "Writer " + title, Content: "Content of " + title}
}

func mustCreate(t *testing.T, repo repository.StoryRepository, st *entity.Story) *entity.Story {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), st))
	// keep createdAt strictly increasing for stores with millisecond precision
	time.Sleep(3 * time.Millisecond)
	return st
}

// Run executes the suite.
func Run(t *testing.T, h Harness) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		repo := h.New(t)
		st := newStory("Alpha")
		st.Image = entity.NewImage([]byte("\x89PNG data"), "image/png", "alpha.png")
		mustCreate(t, repo, st)

		require.NotEmpty(t, st.ID)
		assert.False(t, st.CreatedAt.IsZero())
		assert.True(t, st.CreatedAt.Equal(st.UpdatedAt))

		got, err := repo.Get(ctx, st.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, st.ID, got.ID)
		assert.Equal(t, "Alpha", got.Title)
		assert.Equal(t, "Writer Alpha", got.Writer)
		assert.Equal(t, "Content of Alpha", got.Content)
		require.NotNil(t, got.Image)
		assert.Nil(t, got.Image.Data)
		assert.Equal(t, "image/png", got.Image.ContentType)
		assert.Equal(t, "alpha.png", got.Image.Filename)
		assert.EqualValues(t, 9, got.Image.Size)
	})

	t.Run("GetMissing", func(t *testing.T) {
		repo := h.New(t)
		got, err := repo.Get(ctx, h.UnknownID)
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = repo.Get(ctx, h.InvalidID)
		assert.ErrorIs(t, err, entity.ErrInvalidID)
	})

	t.Run("DuplicateTitle", func(t *testing.T) {
		repo := h.New(t)
		mustCreate(t, repo, newStory("Same"))

		exists, err := repo.ExistsByTitle(ctx, "Same", "")
		require.NoError(t, err)
		assert.True(t, exists)

		err = repo.Create(ctx, newStory("Same"))
		assert.ErrorIs(t, err, entity.ErrDuplicateTitle)

		n, err := repo.Count(ctx, repository.StoryFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("ExistsByTitleExclude", func(t *testing.T) {
		repo := h.New(t)
		a := mustCreate(t, repo, newStory("A"))

		exists, err := repo.ExistsByTitle(ctx, "A", a.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsByTitle(ctx, "a", "")
		require.NoError(t, err)
		assert.False(t, exists, "title match is exact")
	})

	t.Run("ListOrderAndPaging", func(t *testing.T) {
		repo := h.New(t)
		for i := 0; i < 5; i++ {
			mustCreate(t, repo, newStory(fmt.Sprintf("S%d", i)))
		}

		page, err := repo.List(ctx, repository.StoryFilter{}, 0, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "S4", page[0].Title)
		assert.Equal(t, "S3", page[1].Title)

		page, err = repo.List(ctx, repository.StoryFilter{}, 4, 2)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "S0", page[0].Title)

		page, err = repo.List(ctx, repository.StoryFilter{}, 10, 2)
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("Search", func(t *testing.T) {
		repo := h.New(t)
		mustCreate(t, repo, &entity.Story{Title: "The Dragon", Writer: "Ann", Content: "fire"})
		mustCreate(t, repo, &entity.Story{Title: "Sea", Writer: "DRAGONFLY", Content: "water"})
		mustCreate(t, repo, &entity.Story{Title: "Sky", Writer: "Bob", Content: "a dragon's wing"})
		mustCreate(t, repo, &entity.Story{Title: "Deal", Writer: "Cy", Content: "100% off (a.b)"})

		filter := repository.StoryFilter{Search: "dragon"}
		n, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)

		list, err := repo.List(ctx, filter, 0, 10)
		require.NoError(t, err)
		assert.Len(t, list, 3)

		for _, kw := range []string{"100%", "(a.b)"} {
			n, err = repo.Count(ctx, repository.StoryFilter{Search: kw})
			require.NoError(t, err)
			assert.EqualValues(t, 1, n, kw)
		}

		n, err = repo.Count(ctx, repository.StoryFilter{Search: "%"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n, "wildcards match literally")
	})

	t.Run("UpdateImageActions", func(t *testing.T) {
		repo := h.New(t)
		st := newStory("U")
		st.Image = entity.NewImage([]byte("GIF89a"), "image/gif", "u.gif")
		mustCreate(t, repo, st)
		created := st.CreatedAt

		st.Title, st.Writer, st.Content = "U2", "W2", "C2"
		require.NoError(t, repo.Update(ctx, st, repository.ImageChange{Action: repository.ImageKeep}))
		assert.False(t, st.UpdatedAt.Before(created))

		got, err := repo.Get(ctx, st.ID)
		require.NoError(t, err)
		assert.Equal(t, "U2", got.Title)
		assert.Equal(t, "W2", got.Writer)
		assert.Equal(t, "C2", got.Content)
		require.NotNil(t, got.Image)
		assert.Equal(t, "u.gif", got.Image.Filename)

		newImg := entity.NewImage([]byte("RIFFxxxxWEBP"), "image/webp", "n.webp")
		require.NoError(t, repo.Update(ctx, st, repository.ImageChange{Action: repository.ImageReplace, Image: newImg}))
		img, err := repo.GetImage(ctx, st.ID)
		require.NoError(t, err)
		require.NotNil(t, img)
		assert.Equal(t, []byte("RIFFxxxxWEBP"), img.Data)
		assert.Equal(t, "image/webp", img.ContentType)

		require.NoError(t, repo.Update(ctx, st, repository.ImageChange{Action: repository.ImageClear}))
		img, err = repo.GetImage(ctx, st.ID)
		require.NoError(t, err)
		assert.Nil(t, img)
		got, err = repo.Get(ctx, st.ID)
		require.NoError(t, err)
		assert.False(t, got.HasImage())
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		repo := h.New(t)
		err := repo.Update(ctx, &entity.Story{ID: h.UnknownID, Title: "x", Writer: "y", Content: "z"}, repository.ImageChange{})
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := h.New(t)
		st := mustCreate(t, repo, newStory("D"))

		require.NoError(t, repo.Delete(ctx, st.ID))
		got, err := repo.Get(ctx, st.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		assert.ErrorIs(t, repo.Delete(ctx, st.ID), entity.ErrNotFound)
		_, err = repo.GetImage(ctx, st.ID)
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("Stats", func(t *testing.T) {
		repo := h.New(t)
		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.TotalStories)
		assert.Nil(t, stats.LatestStoryAt)

		a := &entity.Story{Title: "A", Writer: "Ann", Content: "1234"}
		a.Image = entity.NewImage([]byte("img"), "image/jpeg", "a.jpg")
		mustCreate(t, repo, a)
		mustCreate(t, repo, &entity.Story{Title: "B", Writer: "Ann", Content: "12"})
		last := mustCreate(t, repo, &entity.Story{Title: "C", Writer: "Bob", Content: "123456"})

		stats, err = repo.Stats(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, stats.TotalStories)
		assert.EqualValues(t, 2, stats.UniqueWriters)
		assert.EqualValues(t, 1, stats.StoriesWithImages)
		assert.EqualValues(t, 2, stats.StoriesWithoutImages)
		assert.EqualValues(t, 4, stats.AvgContentLength)
		require.NotNil(t, stats.LatestStoryAt)
		assert.WithinDuration(t, last.CreatedAt, *stats.LatestStoryAt, time.Millisecond)
	})

	t.Run("Ping", func(t *testing.T) {
		repo := h.New(t)
		assert.NoError(t, repo.Ping(ctx))
	})
}
