package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"story-api/internal/domain/entity"
	pg "story-api/internal/infra/adapter/persistence/postgres"
	"story-api/internal/repository"
)

/* ─────────────────────────── helpers ─────────────────────────── */

const testID = "0b6f1f5e-3c64-4d2b-9f3a-7f0a8a1c2d3e"

var storyCols = []string{
	"id", "title", "writer", "content",
	"image_content_type", "image_filename", "image_size",
	"created_at", "updated_at",
}

func storyRow(rows *sqlmock.Rows, s *entity.Story) *sqlmock.Rows {
	if s.Image != nil {
		return rows.AddRow(s.ID, s.Title, s.Writer, s.Content,
			s.Image.ContentType, s.Image.Filename, s.Image.Size,
			s.CreatedAt, s.UpdatedAt)
	}
	return rows.AddRow(s.ID, s.Title, s.Writer, s.Content,
		nil, nil, nil, s.CreatedAt, s.UpdatedAt)
}

func newMock(t *testing.T) (*pg.StoryRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return pg.NewStoryRepo(db), mock
}

/* ─────────────────────────── 1. Get ─────────────────────────── */

func TestStoryRepo_Get(t *testing.T) {
	repo, mock := newMock(t)

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	want := &entity.Story{
		ID: testID, Title: "Dragon", Writer: "Ann", Content: "Fire",
		Image:     &entity.Image{ContentType: "image/png", Filename: "d.png", Size: 42},
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM stories WHERE id = $1")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(storyRow(sqlmock.NewRows(storyCols), want))

	got, err := repo.Get(context.Background(), testID)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStoryRepo_Get_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM stories").WillReturnRows(sqlmock.NewRows(storyCols))

	got, err := repo.Get(context.Background(), testID)
	if err != nil || got != nil {
		t.Fatalf("want (nil,nil) got (%v,%v)", got, err)
	}
}

func TestStoryRepo_Get_InvalidID(t *testing.T) {
	repo, mock := newMock(t)

	_, err := repo.Get(context.Background(), "not-a-uuid")
	if !errors.Is(err, entity.ErrInvalidID) {
		t.Fatalf("want ErrInvalidID got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 2. List / Count ─────────────────────────── */

func TestStoryRepo_List_WithSearch(t *testing.T) {
	repo, mock := newMock(t)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE (title ILIKE $1 OR writer ILIKE $1 OR content ILIKE $1) ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3")).
		WithArgs(`%50\%%`, 10, 20).
		WillReturnRows(storyRow(sqlmock.NewRows(storyCols), &entity.Story{
			ID: testID, Title: "x", Writer: "y", Content: "z", CreatedAt: now, UpdatedAt: now,
		}))

	got, err := repo.List(context.Background(), repository.StoryFilter{Search: "50%"}, 20, 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if got[0].HasImage() {
		t.Fatal("image should be nil when columns are NULL")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStoryRepo_List_NoFilter(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM stories ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(storyCols))

	got, err := repo.List(context.Background(), repository.StoryFilter{}, 0, 10)
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestStoryRepo_Count(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM stories WHERE")).
		WithArgs("%go%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	n, err := repo.Count(context.Background(), repository.StoryFilter{Search: "go"})
	if err != nil || n != 7 {
		t.Fatalf("Count n=%d err=%v", n, err)
	}
}

/* ─────────────────────────── 3. Create ─────────────────────────── */

func TestStoryRepo_Create(t *testing.T) {
	repo, mock := newMock(t)

	img := entity.NewImage([]byte{1, 2, 3}, "image/png", "a.png")
	mock.ExpectExec("INSERT INTO stories").
		WithArgs(sqlmock.AnyArg(), "T", "W", "C", []byte{1, 2, 3}, "image/png", "a.png", int64(3), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	st := &entity.Story{Title: "T", Writer: "W", Content: "C", Image: img}
	if err := repo.Create(context.Background(), st); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if len(st.ID) != 36 || st.CreatedAt.IsZero() || !st.CreatedAt.Equal(st.UpdatedAt) {
		t.Fatalf("id/timestamps not filled: %+v", st)
	}
}

func TestStoryRepo_Create_UniqueViolation(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO stories").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_stories_title"})

	err := repo.Create(context.Background(), &entity.Story{Title: "T", Writer: "W", Content: "C"})
	if !errors.Is(err, entity.ErrDuplicateTitle) {
		t.Fatalf("want ErrDuplicateTitle got %v", err)
	}
}

/* ─────────────────────────── 4. ExistsByTitle ─────────────────────────── */

func TestStoryRepo_ExistsByTitle(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE title = $1)")).
		WithArgs("T").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE title = $1 AND id <> $2")).
		WithArgs("T", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := repo.ExistsByTitle(context.Background(), "T", "")
	if err != nil || !ok {
		t.Fatalf("want true got %v err=%v", ok, err)
	}
	ok, err = repo.ExistsByTitle(context.Background(), "T", testID)
	if err != nil || ok {
		t.Fatalf("want false got %v err=%v", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 5. Update ─────────────────────────── */

func TestStoryRepo_Update(t *testing.T) {
	tests := []struct {
		name   string
		change repository.ImageChange
		match  string
	}{
		{"keep", repository.ImageChange{Action: repository.ImageKeep}, "updated_at = $4"},
		{"replace", repository.ImageChange{Action: repository.ImageReplace, Image: entity.NewImage([]byte("x"), "image/gif", "x.gif")}, "image_data         = $4"},
		{"clear", repository.ImageChange{Action: repository.ImageClear}, "image_data         = NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)
			mock.ExpectExec(regexp.QuoteMeta(tt.match)).
				WillReturnResult(sqlmock.NewResult(0, 1))

			st := &entity.Story{ID: testID, Title: "T", Writer: "W", Content: "C"}
			if err := repo.Update(context.Background(), st, tt.change); err != nil {
				t.Fatalf("Update err=%v", err)
			}
			if st.UpdatedAt.IsZero() {
				t.Fatal("UpdatedAt not refreshed")
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestStoryRepo_Update_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE stories").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &entity.Story{ID: testID}, repository.ImageChange{})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

/* ─────────────────────────── 6. Delete ─────────────────────────── */

func TestStoryRepo_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stories WHERE id = $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stories WHERE id = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), testID); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if err := repo.Delete(context.Background(), testID); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

/* ─────────────────────────── 7. GetImage ─────────────────────────── */

func TestStoryRepo_GetImage(t *testing.T) {
	repo, mock := newMock(t)
	cols := []string{"image_data", "image_content_type", "image_filename", "image_size"}

	mock.ExpectQuery("SELECT image_data").
		WillReturnRows(sqlmock.NewRows(cols).AddRow([]byte{9, 9}, "image/webp", "w.webp", int64(2)))
	mock.ExpectQuery("SELECT image_data").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(nil, nil, nil, nil))
	mock.ExpectQuery("SELECT image_data").
		WillReturnRows(sqlmock.NewRows(cols))

	img, err := repo.GetImage(context.Background(), testID)
	if err != nil {
		t.Fatalf("GetImage err=%v", err)
	}
	want := &entity.Image{Data: []byte{9, 9}, ContentType: "image/webp", Filename: "w.webp", Size: 2}
	if diff := cmp.Diff(want, img); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	img, err = repo.GetImage(context.Background(), testID)
	if err != nil || img != nil {
		t.Fatalf("want (nil,nil) got (%v,%v)", img, err)
	}

	_, err = repo.GetImage(context.Background(), testID)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

/* ─────────────────────────── 8. Stats ─────────────────────────── */

func TestStoryRepo_Stats(t *testing.T) {
	repo, mock := newMock(t)

	latest := time.Date(2026, 5, 5, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("COUNT\\(DISTINCT writer\\)").
		WillReturnRows(sqlmock.NewRows([]string{"total", "writers", "with_images", "avg", "latest"}).
			AddRow(int64(5), int64(3), int64(2), int64(120), latest))

	got, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats err=%v", err)
	}
	want := &repository.StoryStats{
		TotalStories: 5, UniqueWriters: 3, StoriesWithImages: 2, StoriesWithoutImages: 3,
		AvgContentLength: 120, LatestStoryAt: &latest,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestStoryRepo_Stats_Empty(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM stories").
		WillReturnRows(sqlmock.NewRows([]string{"total", "writers", "with_images", "avg", "latest"}).
			AddRow(int64(0), int64(0), int64(0), int64(0), nil))

	got, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats err=%v", err)
	}
	if got.TotalStories != 0 || got.LatestStoryAt != nil {
		t.Fatalf("unexpected stats %+v", got)
	}
}
