// Package postgres provides the PostgreSQL implementation of the story repository.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"story-api/internal/domain/entity"
	"story-api/internal/pkg/search"
	"story-api/internal/repository"
)

const uniqueViolation = "23505"

const storyColumns = `id, title, writer, content, image_content_type, image_filename, image_size, created_at, updated_at`

// StoryRepo stores stories in the stories table; image bytes live in a BYTEA column.
type StoryRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewStoryRepo returns a StoryRepository backed by db.
func NewStoryRepo(db *sql.DB) *StoryRepo {
	return &StoryRepo{
		db:  db,
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

var _ repository.StoryRepository = (*StoryRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (*entity.Story, error) {
	var (
		st          entity.Story
		contentType sql.NullString
		filename    sql.NullString
		size        sql.NullInt64
	)
	if err := row.Scan(
		&st.ID, &st.Title, &st.Writer, &st.Content,
		&contentType, &filename, &size,
		&st.CreatedAt, &st.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if contentType.Valid {
		st.Image = &entity.Image{
			ContentType: contentType.String,
			Filename:    filename.String,
			Size:        size.Int64,
		}
	}
	return &st, nil
}

// parseID validates id as a UUID.
func parseID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", entity.ErrInvalidID, id)
	}
	return u, nil
}

// whereClause builds the search condition; every column shares the $start placeholder.
func whereClause(filter repository.StoryFilter, start int) (string, []any) {
	if filter.Search == "" {
		return "", nil
	}
	clause := fmt.Sprintf(" WHERE (title ILIKE $%[1]d OR writer ILIKE $%[1]d OR content ILIKE $%[1]d)", start)
	return clause, []any{search.EscapeILIKE(filter.Search)}
}

func imageArgs(img *entity.Image) (data, contentType, filename, size any) {
	if img == nil {
		return nil, nil, nil, nil
	}
	return img.Data, img.ContentType, img.Filename, img.Size
}

func mapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, entity.ErrDuplicateTitle)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (repo *StoryRepo) Create(ctx context.Context, story *entity.Story) error {
	id := uuid.New()
	now := repo.now()
	data, ct, fn, size := imageArgs(story.Image)

	const query = `
INSERT INTO stories (id, title, writer, content, image_data, image_content_type, image_filename, image_size, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := repo.db.ExecContext(ctx, query,
		id, story.Title, story.Writer, story.Content,
		data, ct, fn, size,
		now, now,
	); err != nil {
		return mapWriteErr("Create", err)
	}

	story.ID = id.String()
	story.CreatedAt = now
	story.UpdatedAt = now
	return nil
}

func (repo *StoryRepo) Get(ctx context.Context, id string) (*entity.Story, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + storyColumns + ` FROM stories WHERE id = $1 LIMIT 1`
	st, err := scanStory(repo.db.QueryRowContext(ctx, query, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return st, nil
}

func (repo *StoryRepo) List(ctx context.Context, filter repository.StoryFilter, offset, limit int) ([]*entity.Story, error) {
	where, args := whereClause(filter, 1)
	n := len(args)
	query := `SELECT ` + storyColumns + ` FROM stories` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, offset)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stories := make([]*entity.Story, 0, limit)
	for rows.Next() {
		st, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		stories = append(stories, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return stories, nil
}

func (repo *StoryRepo) Count(ctx context.Context, filter repository.StoryFilter) (int64, error) {
	where, args := whereClause(filter, 1)
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stories`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *StoryRepo) ExistsByTitle(ctx context.Context, title, excludeID string) (bool, error) {
	var (
		exists bool
		err    error
	)
	// An unparsable excludeID cannot belong to a stored story, so nothing is excluded.
	if uid, perr := uuid.Parse(excludeID); excludeID != "" && perr == nil {
		const query = `SELECT EXISTS(SELECT 1 FROM stories WHERE title = $1 AND id <> $2)`
		err = repo.db.QueryRowContext(ctx, query, title, uid).Scan(&exists)
	} else {
		const query = `SELECT EXISTS(SELECT 1 FROM stories WHERE title = $1)`
		err = repo.db.QueryRowContext(ctx, query, title).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("ExistsByTitle: %w", err)
	}
	return exists, nil
}

func (repo *StoryRepo) Update(ctx context.Context, story *entity.Story, change repository.ImageChange) error {
	uid, err := parseID(story.ID)
	if err != nil {
		return err
	}
	now := repo.now()

	var res sql.Result
	switch change.Action {
	case repository.ImageReplace:
		data, ct, fn, size := imageArgs(change.Image)
		const query = `
UPDATE stories SET
       title              = $1,
       writer             = $2,
       content            = $3,
       image_data         = $4,
       image_content_type = $5,
       image_filename     = $6,
       image_size         = $7,
       updated_at         = $8
WHERE id = $9`
		res, err = repo.db.ExecContext(ctx, query, story.Title, story.Writer, story.Content, data, ct, fn, size, now, uid)
	case repository.ImageClear:
		const query = `
UPDATE stories SET
       title              = $1,
       writer             = $2,
       content            = $3,
       image_data         = NULL,
       image_content_type = NULL,
       image_filename     = NULL,
       image_size         = NULL,
       updated_at         = $4
WHERE id = $5`
		res, err = repo.db.ExecContext(ctx, query, story.Title, story.Writer, story.Content, now, uid)
	default:
		const query = `
UPDATE stories SET
       title      = $1,
       writer     = $2,
       content    = $3,
       updated_at = $4
WHERE id = $5`
		res, err = repo.db.ExecContext(ctx, query, story.Title, story.Writer, story.Content, now, uid)
	}
	if err != nil {
		return mapWriteErr("Update", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	story.UpdatedAt = now
	return nil
}

func (repo *StoryRepo) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM stories WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *StoryRepo) GetImage(ctx context.Context, id string) (*entity.Image, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var (
		data        []byte
		contentType sql.NullString
		filename    sql.NullString
		size        sql.NullInt64
	)
	const query = `SELECT image_data, image_content_type, image_filename, image_size FROM stories WHERE id = $1`
	err = repo.db.QueryRowContext(ctx, query, uid).Scan(&data, &contentType, &filename, &size)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("GetImage: %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("GetImage: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return &entity.Image{
		Data:        data,
		ContentType: contentType.String,
		Filename:    filename.String,
		Size:        size.Int64,
	}, nil
}

func (repo *StoryRepo) Stats(ctx context.Context) (*repository.StoryStats, error) {
	const query = `
SELECT COUNT(*),
       COUNT(DISTINCT writer),
       COUNT(image_data),
       COALESCE(ROUND(AVG(char_length(content))), 0)::BIGINT,
       MAX(created_at)
FROM stories`
	var (
		stats  repository.StoryStats
		latest sql.NullTime
	)
	if err := repo.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalStories, &stats.UniqueWriters, &stats.StoriesWithImages,
		&stats.AvgContentLength, &latest,
	); err != nil {
		return nil, fmt.Errorf("Stats: %w", err)
	}
	stats.StoriesWithoutImages = stats.TotalStories - stats.StoriesWithImages
	if latest.Valid {
		t := latest.Time
		stats.LatestStoryAt = &t
	}
	return &stats, nil
}

func (repo *StoryRepo) Ping(ctx context.Context) error {
	return repo.db.PingContext(ctx)
}
