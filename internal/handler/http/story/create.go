package story

import (
	"net/http"

	"story-api/internal/handler/http/respond"
	storyUC "story-api/internal/usecase/story"
)

type CreateHandler struct {
	Svc           storyUC.Service
	MaxUploadSize int64
}

// ServeHTTP creates a story.
// @Summary      Create a story
// @Description  Creates a story from a multipart form. The optional image must be JPEG, PNG, GIF or WebP.
// @Tags         stories
// @Accept       multipart/form-data
// @Produce      json
// @Param        title          formData  string  true   "Title (max 200 characters)"
// @Param        writter        formData  string  true   "Writer (max 100 characters)"
// @Param        story_content  formData  string  true   "Content (max 10000 characters)"
// @Param        image          formData  file    false  "Image"
// @Success      201 {object} respond.Envelope{data=DTO}
// @Header       201 {integer} X-RateLimit-Limit "Maximum number of requests allowed in the current window"
// @Header       201 {integer} X-RateLimit-Remaining "Number of requests remaining in the current window"
// @Header       201 {integer} X-RateLimit-Reset "Unix timestamp when the rate limit window resets"
// @Failure      400 {object} respond.Envelope "Validation error, invalid file type or file too large"
// @Failure      409 {object} respond.Envelope "A story with this title already exists"
// @Failure      429 {object} respond.Envelope "Too many requests"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      500 {object} respond.Envelope "Internal server error"
// @Router       /api [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	form, err := parseStoryForm(w, r, h.MaxUploadSize)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	st, err := h.Svc.Create(r.Context(), storyUC.CreateInput{
		Title:   form.Title,
		Writer:  form.Writer,
		Content: form.Content,
		Image:   form.Image,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, http.StatusCreated, toDTO(st), "Story created successfully")
}
