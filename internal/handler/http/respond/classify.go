package respond

import (
	"errors"
	"fmt"
	"net/http"

	"story-api/internal/domain/entity"
)

// User-facing messages.
const (
	MsgInvalidID       = "Invalid story ID format"
	MsgStoryNotFound   = "Story not found"
	MsgImageNotFound   = "Image not found"
	MsgDuplicateTitle  = "A story with this title already exists"
	MsgInvalidFileType = "Invalid file type. Only JPEG, PNG, GIF and WebP images are allowed"
	MsgTooManyRequests = "Too many requests, please try again later."
	MsgInternal        = "Internal server error"
)

// Classify maps an error to an HTTP status code and a safe message.
//
//	*entity.ValidationError   -> 400, its message
//	entity.ErrInvalidID       -> 400
//	entity.ErrInvalidImageType -> 400
//	entity.ErrImageTooLarge   -> 400
//	entity.ErrImageNotFound   -> 404
//	entity.ErrNotFound        -> 404
//	entity.ErrDuplicateTitle  -> 409
//	anything else             -> 500
func Classify(err error) (int, string) {
	var ve *entity.ValidationError
	var tooLarge *entity.ImageTooLargeError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, entity.ErrInvalidID):
		return http.StatusBadRequest, MsgInvalidID
	case errors.Is(err, entity.ErrInvalidImageType):
		return http.StatusBadRequest, MsgInvalidFileType
	case errors.As(err, &tooLarge):
		return http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %s", HumanSize(tooLarge.MaxSize))
	case errors.Is(err, entity.ErrImageTooLarge):
		return http.StatusBadRequest, "File too large"
	case errors.Is(err, entity.ErrImageNotFound):
		return http.StatusNotFound, MsgImageNotFound
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound, MsgStoryNotFound
	case errors.Is(err, entity.ErrDuplicateTitle):
		return http.StatusConflict, MsgDuplicateTitle
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

// HumanSize renders a byte count as whole MB or KB when it divides evenly.
func HumanSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
