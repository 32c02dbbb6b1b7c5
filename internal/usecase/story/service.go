package story

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"story-api/internal/common/pagination"
	"story-api/internal/domain/entity"
	"story-api/internal/observability/metrics"
	"story-api/internal/observability/tracing"
	"story-api/internal/repository"
)

// ImageUpload is an image received from a client.
type ImageUpload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// CreateInput represents the input parameters for creating a new story.
type CreateInput struct {
	Title   string
	Writer  string
	Content string
	Image   *ImageUpload
}

// UpdateInput represents the input parameters for updating a story.
// All three text fields are replaced together. A new Image takes precedence
// over RemoveImage; with neither set the stored image is kept.
type UpdateInput struct {
	ID          string
	Title       string
	Writer      string
	Content     string
	Image       *ImageUpload
	RemoveImage bool
}

// ListInput selects one page of stories.
type ListInput struct {
	Params pagination.Params
	Search string
}

// ListResult is one page of stories with its pagination metadata.
type ListResult struct {
	Stories    []*entity.Story
	Pagination pagination.Metadata
}

// Service provides story management use cases.
// It handles business logic for story operations and delegates persistence to the repository.
type Service struct {
	Repo repository.StoryRepository

	// MaxImageSize is the upload ceiling in bytes; zero means entity.DefaultMaxImageSize.
	MaxImageSize int64

	// Pagination bounds List; the zero value means pagination.DefaultConfig().
	Pagination pagination.Config
}

func (s *Service) paginationConfig() pagination.Config {
	if s.Pagination.MaxLimit == 0 {
		return pagination.DefaultConfig()
	}
	return s.Pagination
}

func (s *Service) maxImageSize() int64 {
	if s.MaxImageSize <= 0 {
		return entity.DefaultMaxImageSize
	}
	return s.MaxImageSize
}

// List returns one page of stories matching in.Search, newest first.
// The page and the total count are read concurrently.
func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	params := in.Params.WithDefaults(s.paginationConfig())
	filter := repository.StoryFilter{Search: strings.TrimSpace(in.Search)}

	strategy := pagination.OffsetStrategy{}
	q := strategy.CalculateQuery(params)

	var (
		total   int64
		stories []*entity.Story
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.Repo.Count(gctx, filter)
		if err != nil {
			return fmt.Errorf("count stories: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		list, err := s.Repo.List(gctx, filter, q.Offset, q.Limit)
		if err != nil {
			return fmt.Errorf("list stories: %w", err)
		}
		stories = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if stories == nil {
		stories = []*entity.Story{}
	}
	pagination.UpdateTotalCount(total)

	return &ListResult{
		Stories:    stories,
		Pagination: strategy.BuildMetadata(params, total),
	}, nil
}

// Get retrieves a single story with image metadata.
// Returns ErrStoryNotFound if the story does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.Story, error) {
	st, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get story: %w", err)
	}
	if st == nil {
		return nil, ErrStoryNotFound
	}
	return st, nil
}

// GetImage retrieves the image payload of a story.
// Returns ErrStoryNotFound if the story does not exist and ErrImageNotFound
// if it has no image.
func (s *Service) GetImage(ctx context.Context, id string) (*entity.Image, error) {
	img, err := s.Repo.GetImage(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("get story image: %w", err)
	}
	if img == nil || len(img.Data) == 0 {
		return nil, ErrImageNotFound
	}
	return img, nil
}

// Create validates and stores a new story.
//
// Checks run in order: required fields, field lengths, image type and size,
// then title uniqueness. Returns a ValidationError, an image error or
// ErrDuplicateTitle on the first failure.
func (s *Service) Create(ctx context.Context, in CreateInput) (st *entity.Story, err error) {
	ctx, span := tracing.StartSpan(ctx, "story.Create")
	defer func() {
		metrics.RecordStoryOperation("create", err)
		tracing.EndSpan(span, err)
	}()

	fields, err := entity.ValidateStoryFields(in.Title, in.Writer, in.Content)
	if err != nil {
		return nil, err
	}

	img, err := s.buildImage(in.Image)
	if err != nil {
		return nil, err
	}

	exists, err := s.Repo.ExistsByTitle(ctx, fields.Title, "")
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if exists {
		return nil, ErrDuplicateTitle
	}

	st = &entity.Story{
		Title:   fields.Title,
		Writer:  fields.Writer,
		Content: fields.Content,
		Image:   img,
	}
	if err := s.Repo.Create(ctx, st); err != nil {
		if errors.Is(err, entity.ErrDuplicateTitle) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("create story: %w", err)
	}

	span.SetAttributes(attribute.String("story.id", st.ID), attribute.Bool("story.has_image", img != nil))
	if img != nil {
		metrics.RecordImageUpload(img.Size)
	}
	return st, nil
}

// Update replaces the text fields of a story and applies the image change.
//
// Checks run in order: required fields, field lengths, image type and size,
// existence, then title uniqueness against every other story.
func (s *Service) Update(ctx context.Context, in UpdateInput) (st *entity.Story, err error) {
	ctx, span := tracing.StartSpan(ctx, "story.Update", attribute.String("story.id", in.ID))
	defer func() {
		metrics.RecordStoryOperation("update", err)
		tracing.EndSpan(span, err)
	}()

	fields, err := entity.ValidateStoryFields(in.Title, in.Writer, in.Content)
	if err != nil {
		return nil, err
	}

	img, err := s.buildImage(in.Image)
	if err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	exists, err := s.Repo.ExistsByTitle(ctx, fields.Title, current.ID)
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if exists {
		return nil, ErrDuplicateTitle
	}

	change := repository.ImageChange{Action: repository.ImageKeep}
	switch {
	case img != nil:
		change = repository.ImageChange{Action: repository.ImageReplace, Image: img}
	case in.RemoveImage:
		change = repository.ImageChange{Action: repository.ImageClear}
	}

	updated := *current
	updated.Title = fields.Title
	updated.Writer = fields.Writer
	updated.Content = fields.Content
	switch change.Action {
	case repository.ImageReplace:
		updated.Image = img
	case repository.ImageClear:
		updated.Image = nil
	}

	if err := s.Repo.Update(ctx, &updated, change); err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			return nil, ErrStoryNotFound
		case errors.Is(err, entity.ErrDuplicateTitle):
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("update story: %w", err)
	}

	span.SetAttributes(attribute.String("story.image_action", change.Action.String()))
	if img != nil {
		metrics.RecordImageUpload(img.Size)
	}
	return &updated, nil
}

// Delete removes a story and its image.
// Returns ErrStoryNotFound if the story does not exist.
func (s *Service) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.StartSpan(ctx, "story.Delete", attribute.String("story.id", id))
	defer func() {
		metrics.RecordStoryOperation("delete", err)
		tracing.EndSpan(span, err)
	}()

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrStoryNotFound
		}
		return fmt.Errorf("delete story: %w", err)
	}
	return nil
}

// Stats returns collection-wide statistics.
func (s *Service) Stats(ctx context.Context) (*repository.StoryStats, error) {
	stats, err := s.Repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("story stats: %w", err)
	}
	metrics.UpdateStoriesTotal(stats.TotalStories)
	return stats, nil
}

// buildImage validates an upload and converts it to an entity.Image.
// A nil upload yields a nil image.
func (s *Service) buildImage(up *ImageUpload) (*entity.Image, error) {
	if up == nil {
		return nil, nil
	}
	if err := entity.ValidateImageUpload(up.ContentType, int64(len(up.Data)), s.maxImageSize()); err != nil {
		return nil, err
	}
	return entity.NewImage(up.Data, up.ContentType, up.Filename), nil
}
