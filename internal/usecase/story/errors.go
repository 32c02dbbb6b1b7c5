// Package story provides the use cases for managing stories.
// It enforces validation order, title uniqueness and pagination policy on top
// of the story repository.
package story

import (
	"fmt"

	"story-api/internal/domain/entity"
)

// Sentinel errors for story use case operations.
// Each wraps the matching domain kind so callers can test with errors.Is
// against either value.
var (
	// ErrStoryNotFound indicates that the requested story was not found.
	ErrStoryNotFound = fmt.Errorf("story %w", entity.ErrNotFound)

	// ErrImageNotFound indicates that the story exists but has no image.
	ErrImageNotFound = fmt.Errorf("story %w", entity.ErrImageNotFound)

	// ErrDuplicateTitle indicates that another story already uses the title.
	ErrDuplicateTitle = fmt.Errorf("story %w", entity.ErrDuplicateTitle)
)
