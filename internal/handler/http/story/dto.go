// Package story provides HTTP handlers for the story endpoints under /api.
// It includes handlers for listing, searching, reading, creating, updating and
// deleting stories, fetching a story image and reading collection statistics.
package story

import (
	"time"

	"story-api/internal/domain/entity"
	"story-api/internal/repository"
)

// DTO represents the JSON structure for story data transfer.
// Field names follow the public form fields (writter, story_content).
type DTO struct {
	ID        string    `json:"id" example:"0b6f1f5e-3c64-4d2b-9f3a-7f0a8a1c2d3e"`
	Title     string    `json:"title" example:"The Lighthouse Keeper"`
	Writer    string    `json:"writter" example:"Ann Lee"`
	Content   string    `json:"story_content" example:"Every night the lamp turned..."`
	HasImage  bool      `json:"hasImage" example:"true"`
	Image     *ImageDTO `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt" example:"2026-01-02T10:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2026-01-02T10:00:00Z"`
}

// ImageDTO is image metadata; the bytes are served by GET /api/{id}/image.
type ImageDTO struct {
	Filename    string `json:"filename" example:"cover.png"`
	ContentType string `json:"contentType" example:"image/png"`
	Size        int64  `json:"size" example:"20480"`
}

// StatsDTO is the body of GET /api/stats.
type StatsDTO struct {
	TotalStories         int64      `json:"totalStories" example:"12"`
	UniqueWriters        int64      `json:"uniqueWriters" example:"5"`
	StoriesWithImages    int64      `json:"storiesWithImages" example:"4"`
	StoriesWithoutImages int64      `json:"storiesWithoutImages" example:"8"`
	AvgContentLength     int64      `json:"avgContentLength" example:"842"`
	LatestStory          *time.Time `json:"latestStory" example:"2026-01-02T10:00:00Z"`
}

func toDTO(s *entity.Story) DTO {
	d := DTO{
		ID:        s.ID,
		Title:     s.Title,
		Writer:    s.Writer,
		Content:   s.Content,
		HasImage:  s.HasImage(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Image != nil {
		d.Image = &ImageDTO{
			Filename:    s.Image.Filename,
			ContentType: s.Image.ContentType,
			Size:        s.Image.Size,
		}
	}
	return d
}

func toDTOs(stories []*entity.Story) []DTO {
	out := make([]DTO, 0, len(stories))
	for _, s := range stories {
		out = append(out, toDTO(s))
	}
	return out
}

func toStatsDTO(s *repository.StoryStats) StatsDTO {
	return StatsDTO{
		TotalStories:         s.TotalStories,
		UniqueWriters:        s.UniqueWriters,
		StoriesWithImages:    s.StoriesWithImages,
		StoriesWithoutImages: s.StoriesWithoutImages,
		AvgContentLength:     s.AvgContentLength,
		LatestStory:          s.LatestStoryAt,
	}
}
