package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrImageNotFound indicates that a story exists but carries no image
	ErrImageNotFound = errors.New("image not found")

	// ErrInvalidID indicates that an identifier is not in the store's id format
	ErrInvalidID = errors.New("invalid id")

	// ErrDuplicateTitle indicates that another story already uses the title
	ErrDuplicateTitle = errors.New("duplicate title")

	// ErrInvalidImageType indicates that an upload is not an allowed image type
	ErrInvalidImageType = errors.New("invalid image type")

	// ErrImageTooLarge indicates that an upload exceeds the size ceiling
	ErrImageTooLarge = errors.New("image too large")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ImageTooLargeError carries the ceiling that was exceeded.
type ImageTooLargeError struct {
	MaxSize int64
}

func (e *ImageTooLargeError) Error() string {
	return fmt.Sprintf("image exceeds maximum size of %d bytes", e.MaxSize)
}

// Unwrap lets errors.Is match ErrImageTooLarge.
func (e *ImageTooLargeError) Unwrap() error {
	return ErrImageTooLarge
}
