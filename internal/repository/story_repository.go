// Package repository declares the persistence contracts used by the use case layer.
// Concrete adapters live under internal/infra/adapter/persistence.
package repository

import (
	"context"
	"time"

	"story-api/internal/domain/entity"
)

// StoryFilter narrows List and Count.
// An empty Search matches every story; otherwise Search is matched as a literal,
// case-insensitive substring of title, writer or content.
type StoryFilter struct {
	Search string
}

// ImageAction tells Update what to do with the stored image.
type ImageAction int

const (
	// ImageKeep leaves the stored image untouched.
	ImageKeep ImageAction = iota
	// ImageReplace stores ImageChange.Image in place of any existing image.
	ImageReplace
	// ImageClear removes the stored image.
	ImageClear
)

func (a ImageAction) String() string {
	switch a {
	case ImageReplace:
		return "replace"
	case ImageClear:
		return "clear"
	default:
		return "keep"
	}
}

// ImageChange describes the image part of an update.
type ImageChange struct {
	Action ImageAction
	Image  *entity.Image
}

// StoryStats aggregates the whole collection.
type StoryStats struct {
	TotalStories         int64
	UniqueWriters        int64
	StoriesWithImages    int64
	StoriesWithoutImages int64
	AvgContentLength     int64
	LatestStoryAt        *time.Time
}

// StoryRepository is the persistence contract for stories.
//
// Implementations report a missing record as entity.ErrNotFound (except Get,
// see below), a malformed identifier as entity.ErrInvalidID and a store-level
// title collision as entity.ErrDuplicateTitle.
type StoryRepository interface {
	// Create inserts the story and fills ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, story *entity.Story) error
	// Get returns the story with image metadata only (Image.Data is nil).
	// Returns (nil, nil) if the story does not exist.
	Get(ctx context.Context, id string) (*entity.Story, error)
	// List returns stories ordered by CreatedAt descending, image metadata only.
	List(ctx context.Context, filter StoryFilter, offset, limit int) ([]*entity.Story, error)
	// Count returns the number of stories matching filter.
	Count(ctx context.Context, filter StoryFilter) (int64, error)
	// ExistsByTitle reports whether a story other than excludeID uses title.
	// An empty excludeID checks every story.
	ExistsByTitle(ctx context.Context, title, excludeID string) (bool, error)
	// Update replaces title, writer and content, applies change to the image
	// and refreshes UpdatedAt on story.
	Update(ctx context.Context, story *entity.Story, change ImageChange) error
	// Delete removes the story together with its image.
	Delete(ctx context.Context, id string) error
	// GetImage returns the image including its payload.
	// Returns (nil, nil) if the story exists but has no image.
	GetImage(ctx context.Context, id string) (*entity.Image, error)
	// Stats computes collection-wide statistics in a single pass.
	Stats(ctx context.Context) (*StoryStats, error)
	// Ping checks connectivity to the underlying store.
	Ping(ctx context.Context) error
}
