// Package memory provides a map-backed story repository for demos and tests.
// Data lives for the lifetime of the process.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"story-api/internal/domain/entity"
	"story-api/internal/pkg/search"
	"story-api/internal/repository"
)

// StoryRepo is safe for concurrent use.
type StoryRepo struct {
	mu      sync.RWMutex
	stories map[string]*entity.Story
	now     func() time.Time
}

// NewStoryRepo returns an empty repository.
func NewStoryRepo() *StoryRepo {
	return &StoryRepo{
		stories: make(map[string]*entity.Story),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

var _ repository.StoryRepository = (*StoryRepo)(nil)

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", entity.ErrInvalidID, id)
	}
	return nil
}

func copyImage(img *entity.Image, withData bool) *entity.Image {
	if img == nil {
		return nil
	}
	cp := *img
	if withData {
		cp.Data = append([]byte(nil), img.Data...)
	} else {
		cp.Data = nil
	}
	return &cp
}

// metadata returns a copy of st without image bytes.
func metadata(st *entity.Story) *entity.Story {
	cp := *st
	cp.Image = copyImage(st.Image, false)
	return &cp
}

func matches(st *entity.Story, filter repository.StoryFilter) bool {
	if filter.Search == "" {
		return true
	}
	return search.ContainsFold(st.Title, filter.Search) ||
		search.ContainsFold(st.Writer, filter.Search) ||
		search.ContainsFold(st.Content, filter.Search)
}

func (r *StoryRepo) titleTaken(title, excludeID string) bool {
	for id, st := range r.stories {
		if id != excludeID && st.Title == title {
			return true
		}
	}
	return false
}

func (r *StoryRepo) Create(ctx context.Context, story *entity.Story) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.titleTaken(story.Title, "") {
		return fmt.Errorf("Create: %w", entity.ErrDuplicateTitle)
	}

	now := r.now()
	story.ID = uuid.NewString()
	story.CreatedAt = now
	story.UpdatedAt = now

	stored := *story
	stored.Image = copyImage(story.Image, true)
	r.stories[story.ID] = &stored
	return nil
}

func (r *StoryRepo) Get(ctx context.Context, id string) (*entity.Story, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.stories[id]
	if !ok {
		return nil, nil
	}
	return metadata(st), nil
}

// sorted returns matching stories newest first. Callers hold the read lock.
func (r *StoryRepo) sorted(filter repository.StoryFilter) []*entity.Story {
	out := make([]*entity.Story, 0, len(r.stories))
	for _, st := range r.stories {
		if matches(st, filter) {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *StoryRepo) List(ctx context.Context, filter repository.StoryFilter, offset, limit int) ([]*entity.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sorted(filter)
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*entity.Story{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	page := make([]*entity.Story, 0, end-offset)
	for _, st := range all[offset:end] {
		page = append(page, metadata(st))
	}
	return page, nil
}

func (r *StoryRepo) Count(ctx context.Context, filter repository.StoryFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, st := range r.stories {
		if matches(st, filter) {
			n++
		}
	}
	return n, nil
}

func (r *StoryRepo) ExistsByTitle(_ context.Context, title, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.titleTaken(title, excludeID), nil
}

func (r *StoryRepo) Update(ctx context.Context, story *entity.Story, change repository.ImageChange) error {
	if err := checkID(story.ID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.stories[story.ID]
	if !ok {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	if r.titleTaken(story.Title, story.ID) {
		return fmt.Errorf("Update: %w", entity.ErrDuplicateTitle)
	}

	stored.Title = story.Title
	stored.Writer = story.Writer
	stored.Content = story.Content
	switch change.Action {
	case repository.ImageReplace:
		stored.Image = copyImage(change.Image, true)
	case repository.ImageClear:
		stored.Image = nil
	}
	stored.UpdatedAt = r.now()
	story.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *StoryRepo) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stories[id]; !ok {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	delete(r.stories, id)
	return nil
}

func (r *StoryRepo) GetImage(_ context.Context, id string) (*entity.Image, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.stories[id]
	if !ok {
		return nil, fmt.Errorf("GetImage: %w", entity.ErrNotFound)
	}
	return copyImage(st.Image, true), nil
}

func (r *StoryRepo) Stats(_ context.Context) (*repository.StoryStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &repository.StoryStats{}
	writers := make(map[string]struct{})
	var totalLen int64
	for _, st := range r.stories {
		stats.TotalStories++
		writers[st.Writer] = struct{}{}
		if st.HasImage() {
			stats.StoriesWithImages++
		}
		totalLen += int64(len([]rune(st.Content)))
		if stats.LatestStoryAt == nil || st.CreatedAt.After(*stats.LatestStoryAt) {
			t := st.CreatedAt
			stats.LatestStoryAt = &t
		}
	}
	stats.UniqueWriters = int64(len(writers))
	stats.StoriesWithoutImages = stats.TotalStories - stats.StoriesWithImages
	if stats.TotalStories > 0 {
		stats.AvgContentLength = int64(math.Round(float64(totalLen) / float64(stats.TotalStories)))
	}
	return stats, nil
}

func (r *StoryRepo) Ping(context.Context) error { return nil }
