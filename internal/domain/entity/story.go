// Package entity defines the core domain entities and validation logic for the application.
// It contains the Story aggregate with its optional inline Image, the text sanitizer,
// field validation rules and the domain-specific errors shared by every layer.
package entity

import "time"

// Field length limits in Unicode characters, applied after sanitization.
const (
	MaxTitleLength   = 200
	MaxWriterLength  = 100
	MaxContentLength = 10000
)

// Story represents a short text entry written by a writer.
// The ID is assigned by the store on create and never changes afterwards.
type Story struct {
	ID        string
	Title     string
	Writer    string
	Content   string
	Image     *Image
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasImage reports whether the story carries an image.
func (s *Story) HasImage() bool {
	return s != nil && s.Image != nil
}
