package story_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story-api/internal/common/pagination"
	"story-api/internal/domain/entity"
	"story-api/internal/repository"
	storyUC "story-api/internal/usecase/story"
)

/* ───────── stub ───────── */

// minimal in-memory StoryRepository
type stubRepo struct {
	mu      sync.Mutex
	data    map[string]*entity.Story
	nextID  int
	err     error // forced error for every call
	created int

	lastChange repository.ImageChange
}

func newStub() *stubRepo {
	return &stubRepo{data: map[string]*entity.Story{}, nextID: 1}
}

func (s *stubRepo) Create(_ context.Context, st *entity.Story) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	st.ID = fmt.Sprintf("id-%d", s.nextID)
	s.nextID++
	now := time.Date(2026, 1, 1, 0, 0, s.created, 0, time.UTC)
	st.CreatedAt, st.UpdatedAt = now, now
	s.created++
	cp := *st
	s.data[st.ID] = &cp
	return nil
}

func (s *stubRepo) Get(_ context.Context, id string) (*entity.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	st, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (s *stubRepo) List(_ context.Context, _ repository.StoryFilter, offset, limit int) ([]*entity.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Story
	for i := s.nextID - 1; i >= 1; i-- {
		if st, ok := s.data[fmt.Sprintf("id-%d", i)]; ok {
			out = append(out, st)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubRepo) Count(_ context.Context, _ repository.StoryFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.data)), nil
}

func (s *stubRepo) ExistsByTitle(_ context.Context, title, excludeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	for id, st := range s.data {
		if id != excludeID && st.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRepo) Update(_ context.Context, st *entity.Story, change repository.ImageChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[st.ID]; !ok {
		return entity.ErrNotFound
	}
	s.lastChange = change
	st.UpdatedAt = st.UpdatedAt.Add(time.Minute)
	cp := *st
	s.data[st.ID] = &cp
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *stubRepo) GetImage(_ context.Context, id string) (*entity.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	st, ok := s.data[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return st.Image, nil
}

func (s *stubRepo) Stats(_ context.Context) (*repository.StoryStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &repository.StoryStats{TotalStories: int64(len(s.data))}, nil
}

func (s *stubRepo) Ping(_ context.Context) error { return s.err }

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

func validInput() storyUC.CreateInput {
	return storyUC.CreateInput{Title: "A Tale", Writer: "Ann", Content: "Once upon a time"}
}

/* ───────── Create ───────── */

func TestService_Create_Success(t *testing.T) {
	stub := newStub()
	svc := storyUC.Service{Repo: stub}

	in := validInput()
	in.Title = "  <script>x</script>A Tale  "
	in.Image = &storyUC.ImageUpload{Data: pngHeader, ContentType: "image/png", Filename: "dir/cover.png"}

	st, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "id-1", st.ID)
	assert.Equal(t, "A Tale", st.Title)
	require.NotNil(t, st.Image)
	assert.Equal(t, "cover.png", st.Image.Filename)
	assert.EqualValues(t, len(pngHeader), st.Image.Size)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*storyUC.CreateInput)
		field string
	}{
		{"missing title", func(in *storyUC.CreateInput) { in.Title = "  " }, "title"},
		{"script-only title", func(in *storyUC.CreateInput) { in.Title = "<script>a</script>" }, "title"},
		{"missing writer", func(in *storyUC.CreateInput) { in.Writer = "" }, "writter"},
		{"missing content", func(in *storyUC.CreateInput) { in.Content = "" }, "story_content"},
		{"title too long", func(in *storyUC.CreateInput) { in.Title = strings.Repeat("a", entity.MaxTitleLength+1) }, "title"},
		{"required before length", func(in *storyUC.CreateInput) {
			in.Title = strings.Repeat("a", 500)
			in.Content = ""
		}, "story_content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStub()
			svc := storyUC.Service{Repo: stub}
			in := validInput()
			tt.mut(&in)

			_, err := svc.Create(context.Background(), in)
			var ve *entity.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Empty(t, stub.data)
		})
	}
}

func TestService_Create_ImageErrors(t *testing.T) {
	svc := storyUC.Service{Repo: newStub(), MaxImageSize: 4}

	in := validInput()
	in.Image = &storyUC.ImageUpload{Data: pngHeader, ContentType: "application/pdf"}
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, entity.ErrInvalidImageType)

	in.Image = &storyUC.ImageUpload{Data: pngHeader, ContentType: "image/png"}
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, entity.ErrImageTooLarge)
}

func TestService_Create_DuplicateTitle(t *testing.T) {
	stub := newStub()
	svc := storyUC.Service{Repo: stub}

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, storyUC.ErrDuplicateTitle)
	assert.ErrorIs(t, err, entity.ErrDuplicateTitle)
	assert.Len(t, stub.data, 1)
}

func TestService_Create_RepoError(t *testing.T) {
	stub := newStub()
	stub.err = errors.New("db down")
	svc := storyUC.Service{Repo: stub}

	_, err := svc.Create(context.Background(), validInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

/* ───────── Get / GetImage ───────── */

func TestService_Get(t *testing.T) {
	stub := newStub()
	svc := storyUC.Service{Repo: stub}

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)

	_, err = svc.Get(context.Background(), "id-99")
	assert.ErrorIs(t, err, storyUC.ErrStoryNotFound)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestService_GetImage(t *testing.T) {
	stub := newStub()
	svc := storyUC.Service{Repo: stub}

	plain, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Title = "With Image"
	in.Image = &storyUC.ImageUpload{Data: pngHeader, ContentType: "image/png", Filename: "a.png"}
	withImg, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	img, err := svc.GetImage(context.Background(), withImg.ID)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, img.Data)

	_, err = svc.GetImage(context.Background(), plain.ID)
	assert.ErrorIs(t, err, storyUC.ErrImageNotFound)

	_, err = svc.GetImage(context.Background(), "id-99")
	assert.ErrorIs(t, err, storyUC.ErrStoryNotFound)
}

/* ───────── List ───────── */

func TestService_List_Pagination(t *testing.T) {
	stub := newStub()
	svc := storyUC.Service{Repo: stub, Pagination: pagination.Config{DefaultPage: 1, DefaultLimit: 2, MaxLimit: 3}}

	for i := 0; i < 5; i++ {
		in := validInput()
		in.Title = fmt.Sprintf("Story %d", i)
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	res, err := svc.List(context.Background(), storyUC.ListInput{})
	require.NoError(t, err)
	require.Len(t, res.Stories, 2)
	assert.Equal(t, "Story 4", res.Stories[0].Title)
	assert.Equal(t, pagination.Metadata{Current: 1, Total: 3, HasNext: true, HasPrev: false, TotalItems: 5}, res.Pagination)

	res, err = svc.List(context.Background(), storyUC.ListInput{Params: pagination.Params{Page: 2, Limit: 100}})
	require.NoError(t, err)
	assert.Len(t, res.Stories, 2)
	assert.Equal(t, pagination.Metadata{Current: 2, Total: 2, HasNext: false, HasPrev: true, TotalItems: 5}, res.Pagination)
}

func TestService_List_EmptyAndBeyond(t *testing.T) {
	svc := storyUC.Service{Repo: newStub()}

	res, err := svc.List(context.Background(), storyUC.ListInput{Params: pagination.Params{Page: 7}})
	require.NoError(t, err)
	assert.NotNil(t, res.Stories)
	assert.Empty(t, res.Stories)
	assert.Equal(t, 1, res.Pagination.Total)
	assert.False(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)
}

func TestService_List_RepoError(t *testing.T) {
	stub := newStub()
	stub.err = errors.New("boom")
	svc := storyUC.Service{Repo: stub}

	_, err := svc.List(context.Background(), storyUC.ListInput{})
	assert.Error(t, err)
}

/* ───────── Update ───────── */

func TestService_Update_ImageActions(t *testing.T) {
	stub := newStub()
	svc := storyUC.Service{Repo: stub}

	in := validInput()
	in.Image = &storyUC.ImageUpload{Data: pngHeader, ContentType: "image/png", Filename: "a.png"}
	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	// keep
	up, err := svc.Update(context.Background(), storyUC.UpdateInput{ID: created.ID, Title: "New", Writer: "Bob", Content: "Body"})
	require.NoError(t, err)
	assert.Equal(t, repository.ImageKeep, stub.lastChange.Action)
	assert.Equal(t, "New", up.Title)
	assert.True(t, up.HasImage())

	// new image wins over removeImage
	up, err = svc.Update(context.Background(), storyUC.UpdateInput{
		ID: created.ID, Title: "New", Writer: "Bob", Content: "Body",
		Image:       &storyUC.ImageUpload{Data: []byte("GIF89a"), ContentType: "image/gif", Filename: "b.gif"},
		RemoveImage: true,
	})
	require.NoError(t, err)
	assert.Equal(t, repository.ImageReplace, stub.lastChange.Action)
	assert.Equal(t, "b.gif", up.Image.Filename)

	// clear
	up, err = svc.Update(context.Background(), storyUC.UpdateInput{ID: created.ID, Title: "New", Writer: "Bob", Content: "Body", RemoveImage: true})
	require.NoError(t, err)
	assert.Equal(t, repository.ImageClear, stub.lastChange.Action)
	assert.False(t, up.HasImage())
	assert.True(t, up.UpdatedAt.After(created.UpdatedAt))
}

func TestService_Update_Errors(t *testing.T) {
	stub := newStub()
	svc := storyUC.Service{Repo: stub}

	a, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	other := validInput()
	other.Title = "Other"
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	// same title as itself is fine
	_, err = svc.Update(context.Background(), storyUC.UpdateInput{ID: a.ID, Title: a.Title, Writer: "W", Content: "C"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), storyUC.UpdateInput{ID: a.ID, Title: "Other", Writer: "W", Content: "C"})
	assert.ErrorIs(t, err, storyUC.ErrDuplicateTitle)

	_, err = svc.Update(context.Background(), storyUC.UpdateInput{ID: "id-99", Title: "X", Writer: "W", Content: "C"})
	assert.ErrorIs(t, err, storyUC.ErrStoryNotFound)

	// validation runs before the existence check
	_, err = svc.Update(context.Background(), storyUC.UpdateInput{ID: "id-99", Title: "", Writer: "W", Content: "C"})
	var ve *entity.ValidationError
	assert.ErrorAs(t, err, &ve)
}

/* ───────── Delete / Stats ───────── */

func TestService_Delete(t *testing.T) {
	stub := newStub()
	svc := storyUC.Service{Repo: stub}

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), storyUC.ErrStoryNotFound)
}

func TestService_Stats(t *testing.T) {
	stub := newStub()
	svc := storyUC.Service{Repo: stub}
	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalStories)

	stub.err = errors.New("down")
	_, err = svc.Stats(context.Background())
	assert.Error(t, err)
}
