package entity

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// DefaultMaxImageSize is the upload ceiling used when none is configured (10 MB).
const DefaultMaxImageSize int64 = 10 << 20

// allowedImageTypes is the content type allow-list for uploaded images.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// Image is a binary payload stored inline with its story.
// Data is nil when only the metadata has been loaded (list and get).
type Image struct {
	Data        []byte
	ContentType string
	Filename    string
	Size        int64
}

// NewImage builds an Image from an upload. Size always mirrors len(data)
// and the filename is reduced to its base name.
func NewImage(data []byte, contentType, filename string) *Image {
	return &Image{
		Data:        data,
		ContentType: NormalizeContentType(contentType),
		Filename:    cleanFilename(filename),
		Size:        int64(len(data)),
	}
}

// NormalizeContentType lowercases the media type and drops parameters
// such as "; charset=binary".
func NormalizeContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

// IsAllowedImageType reports whether contentType is one of JPEG, PNG, GIF or WebP.
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[NormalizeContentType(contentType)]
	return ok
}

// ValidateImageUpload checks the declared content type and payload size of an upload.
// maxSize <= 0 falls back to DefaultMaxImageSize.
func ValidateImageUpload(contentType string, size, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	if !IsAllowedImageType(contentType) {
		return fmt.Errorf("content type %q: %w", contentType, ErrInvalidImageType)
	}
	if size <= 0 {
		return &ValidationError{Field: "image", Message: "Image file is empty"}
	}
	if size > maxSize {
		return &ImageTooLargeError{MaxSize: maxSize}
	}
	return nil
}

func cleanFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
