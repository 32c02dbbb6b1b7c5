package entity

import (
	"fmt"

	"story-api/internal/utils/text"
)

// StoryFields holds sanitized text fields ready to be stored.
type StoryFields struct {
	Title   string
	Writer  string
	Content string
}

// ValidateStoryFields sanitizes title, writer and content, then validates them.
// Presence is checked for every field before any length is checked, so a request
// missing the writer reports the writer even when the title is too long.
func ValidateStoryFields(title, writer, content string) (StoryFields, error) {
	f := StoryFields{
		Title:   SanitizeText(title),
		Writer:  SanitizeText(writer),
		Content: SanitizeText(content),
	}

	if f.Title == "" {
		return f, &ValidationError{Field: "title", Message: "Title is required"}
	}
	if f.Writer == "" {
		return f, &ValidationError{Field: "writter", Message: "Writer is required"}
	}
	if f.Content == "" {
		return f, &ValidationError{Field: "story_content", Message: "Story content is required"}
	}

	if text.CountRunes(f.Title) > MaxTitleLength {
		return f, &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("Title must be less than %d characters", MaxTitleLength),
		}
	}
	if text.CountRunes(f.Writer) > MaxWriterLength {
		return f, &ValidationError{
			Field:   "writter",
			Message: fmt.Sprintf("Writer name must be less than %d characters", MaxWriterLength),
		}
	}
	if text.CountRunes(f.Content) > MaxContentLength {
		return f, &ValidationError{
			Field:   "story_content",
			Message: fmt.Sprintf("Story content must be less than %d characters", MaxContentLength),
		}
	}

	return f, nil
}
