// Package sqlite provides a SQLite implementation of the story repository built on gorm.
// It backs local development and tests that want a real SQL engine without a server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"story-api/internal/domain/entity"
	"story-api/internal/pkg/search"
	"story-api/internal/repository"
)

// storyModel is the gorm row for a story.
type storyModel struct {
	ID               string `gorm:"primaryKey;size:36"`
	Title            string `gorm:"not null;uniqueIndex"`
	Writer           string `gorm:"not null;index"`
	Content          string `gorm:"not null"`
	ImageData        []byte
	ImageContentType *string
	ImageFilename    *string
	ImageSize        *int64
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

func (storyModel) TableName() string { return "stories" }

const metadataColumns = "id, title, writer, content, image_content_type, image_filename, image_size, created_at, updated_at"

func (m *storyModel) toEntity() *entity.Story {
	st := &entity.Story{
		ID:        m.ID,
		Title:     m.Title,
		Writer:    m.Writer,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.ImageContentType != nil {
		st.Image = &entity.Image{ContentType: *m.ImageContentType}
		if m.ImageFilename != nil {
			st.Image.Filename = *m.ImageFilename
		}
		if m.ImageSize != nil {
			st.Image.Size = *m.ImageSize
		}
	}
	return st
}

func imageColumns(img *entity.Image) map[string]any {
	if img == nil {
		return map[string]any{
			"image_data":         nil,
			"image_content_type": nil,
			"image_filename":     nil,
			"image_size":         nil,
		}
	}
	return map[string]any{
		"image_data":         img.Data,
		"image_content_type": img.ContentType,
		"image_filename":     img.Filename,
		"image_size":         img.Size,
	}
}

// Open opens (creating if needed) the SQLite database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps ":memory:" databases shared.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&storyModel{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

// StoryRepo implements repository.StoryRepository on gorm.
type StoryRepo struct {
	db *gorm.DB
}

// NewStoryRepo creates a new SQLite-backed story repository.
func NewStoryRepo(db *gorm.DB) *StoryRepo {
	return &StoryRepo{db: db}
}

var _ repository.StoryRepository = (*StoryRepo)(nil)

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", entity.ErrInvalidID, id)
	}
	return nil
}

func (repo *StoryRepo) filtered(ctx context.Context, filter repository.StoryFilter) *gorm.DB {
	q := repo.db.WithContext(ctx).Model(&storyModel{})
	if filter.Search != "" {
		p := search.EscapeILIKE(filter.Search)
		q = q.Where(`title LIKE ? ESCAPE '\' OR writer LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\'`, p, p, p)
	}
	return q
}

func mapWriteErr(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, entity.ErrDuplicateTitle)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Create inserts a story with a fresh UUID.
func (repo *StoryRepo) Create(ctx context.Context, story *entity.Story) error {
	now := time.Now().UTC()
	m := storyModel{
		ID:        uuid.NewString(),
		Title:     story.Title,
		Writer:    story.Writer,
		Content:   story.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if img := story.Image; img != nil {
		m.ImageData = img.Data
		m.ImageContentType = &img.ContentType
		m.ImageFilename = &img.Filename
		m.ImageSize = &img.Size
	}

	if err := repo.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapWriteErr("Create", err)
	}
	story.ID = m.ID
	story.CreatedAt = m.CreatedAt
	story.UpdatedAt = m.UpdatedAt
	return nil
}

// Get returns the story without image bytes, or (nil, nil) when absent.
func (repo *StoryRepo) Get(ctx context.Context, id string) (*entity.Story, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var m storyModel
	err := repo.db.WithContext(ctx).Select(metadataColumns).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return m.toEntity(), nil
}

// List returns a newest-first page of stories without image bytes.
func (repo *StoryRepo) List(ctx context.Context, filter repository.StoryFilter, offset, limit int) ([]*entity.Story, error) {
	var models []storyModel
	err := repo.filtered(ctx, filter).
		Select(metadataColumns).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	stories := make([]*entity.Story, 0, len(models))
	for i := range models {
		stories = append(stories, models[i].toEntity())
	}
	return stories, nil
}

// Count returns the number of stories matching filter.
func (repo *StoryRepo) Count(ctx context.Context, filter repository.StoryFilter) (int64, error) {
	var n int64
	if err := repo.filtered(ctx, filter).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

// ExistsByTitle reports whether another story uses title.
func (repo *StoryRepo) ExistsByTitle(ctx context.Context, title, excludeID string) (bool, error) {
	q := repo.db.WithContext(ctx).Model(&storyModel{}).Where("title = ?", title)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Limit(1).Count(&n).Error; err != nil {
		return false, fmt.Errorf("ExistsByTitle: %w", err)
	}
	return n > 0, nil
}

// Update rewrites the text fields and applies change to the image columns.
func (repo *StoryRepo) Update(ctx context.Context, story *entity.Story, change repository.ImageChange) error {
	if err := checkID(story.ID); err != nil {
		return err
	}
	now := time.Now().UTC()
	values := map[string]any{
		"title":      story.Title,
		"writer":     story.Writer,
		"content":    story.Content,
		"updated_at": now,
	}
	switch change.Action {
	case repository.ImageReplace:
		for k, v := range imageColumns(change.Image) {
			values[k] = v
		}
	case repository.ImageClear:
		for k, v := range imageColumns(nil) {
			values[k] = v
		}
	}

	res := repo.db.WithContext(ctx).Model(&storyModel{}).Where("id = ?", story.ID).Updates(values)
	if res.Error != nil {
		return mapWriteErr("Update", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	story.UpdatedAt = now
	return nil
}

// Delete removes the story row.
func (repo *StoryRepo) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&storyModel{})
	if res.Error != nil {
		return fmt.Errorf("Delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

// GetImage loads the image bytes of a story.
func (repo *StoryRepo) GetImage(ctx context.Context, id string) (*entity.Image, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var m storyModel
	err := repo.db.WithContext(ctx).
		Select("id, image_data, image_content_type, image_filename, image_size").
		Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("GetImage: %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("GetImage: %w", err)
	}
	if m.ImageContentType == nil {
		return nil, nil
	}
	img := &entity.Image{Data: m.ImageData, ContentType: *m.ImageContentType, Size: int64(len(m.ImageData))}
	if m.ImageFilename != nil {
		img.Filename = *m.ImageFilename
	}
	return img, nil
}

// Stats aggregates the table in one SELECT. created_at is stored as UTC
// text, so MAX over it is the newest timestamp; the driver returns aggregate
// results untyped and the value is parsed back with its own layouts.
func (repo *StoryRepo) Stats(ctx context.Context) (*repository.StoryStats, error) {
	var agg struct {
		Total      int64
		Writers    int64
		WithImages int64
		AvgLen     float64
		Latest     sql.NullString
	}
	err := repo.db.WithContext(ctx).Model(&storyModel{}).
		Select("COUNT(*) AS total, COUNT(DISTINCT writer) AS writers, COUNT(image_content_type) AS with_images, " +
			"COALESCE(AVG(LENGTH(content)), 0) AS avg_len, MAX(created_at) AS latest").
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("Stats: %w", err)
	}

	stats := &repository.StoryStats{
		TotalStories:         agg.Total,
		UniqueWriters:        agg.Writers,
		StoriesWithImages:    agg.WithImages,
		StoriesWithoutImages: agg.Total - agg.WithImages,
		AvgContentLength:     int64(math.Round(agg.AvgLen)),
	}
	if agg.Latest.Valid {
		latest, err := parseTimestamp(agg.Latest.String)
		if err != nil {
			return nil, fmt.Errorf("Stats: %w", err)
		}
		stats.LatestStoryAt = &latest
	}
	return stats, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Ping checks the underlying connection.
func (repo *StoryRepo) Ping(ctx context.Context) error {
	sqlDB, err := repo.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
