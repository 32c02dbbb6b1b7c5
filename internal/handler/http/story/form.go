package story

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"story-api/internal/domain/entity"
	storyUC "story-api/internal/usecase/story"
)

// Multipart field names.
const (
	fieldTitle       = "title"
	fieldWriter      = "writter"
	fieldContent     = "story_content"
	fieldImage       = "image"
	fieldRemoveImage = "removeImage"
)

// FormOverhead is the allowance for text fields and multipart framing on top
// of the image ceiling.
const FormOverhead int64 = 1 << 20

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const multipartMemory int64 = 8 << 20

// storyForm is the parsed body of POST /api and PUT /api/{id}.
type storyForm struct {
	Title       string
	Writer      string
	Content     string
	Image       *storyUC.ImageUpload
	RemoveImage bool
}

var errInvalidForm = &entity.ValidationError{Field: "form", Message: "Invalid form data"}

// parseStoryForm reads a multipart (or urlencoded) story form.
// Bodies larger than maxImage plus FormOverhead are rejected as too large.
func parseStoryForm(w http.ResponseWriter, r *http.Request, maxImage int64) (*storyForm, error) {
	if maxImage <= 0 {
		maxImage = entity.DefaultMaxImageSize
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImage+FormOverhead)

	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, &entity.ImageTooLargeError{MaxSize: maxImage}
		}
		return nil, errInvalidForm
	}
	// net/http only cleans up the form of the request it created, and
	// middleware hands handlers a copy. The image is read into memory below.
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	f := &storyForm{
		Title:       r.FormValue(fieldTitle),
		Writer:      r.FormValue(fieldWriter),
		Content:     r.FormValue(fieldContent),
		RemoveImage: parseFlag(r.FormValue(fieldRemoveImage)),
	}

	img, err := readImage(r, maxImage)
	if err != nil {
		return nil, err
	}
	f.Image = img
	return f, nil
}

// readImage returns the uploaded image, or nil when the field is absent or
// an empty file input was submitted.
func readImage(r *http.Request, maxImage int64) (*storyUC.ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(fieldImage)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errInvalidForm
	}
	defer func() { _ = file.Close() }()

	if header.Filename == "" && header.Size == 0 {
		return nil, nil
	}

	data, err := readAllLimited(file, maxImage)
	if err != nil {
		return nil, err
	}
	return &storyUC.ImageUpload{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}, nil
}

func readAllLimited(file multipart.File, maxImage int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, maxImage+1))
	if err != nil {
		return nil, errInvalidForm
	}
	if int64(len(data)) > maxImage {
		return nil, &entity.ImageTooLargeError{MaxSize: maxImage}
	}
	return data, nil
}

func parseFlag(v string) bool {
	v = strings.TrimSpace(v)
	return strings.EqualFold(v, "true") || v == "1"
}
