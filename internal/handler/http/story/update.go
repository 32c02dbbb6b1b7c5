package story

import (
	"net/http"

	"story-api/internal/handler/http/pathutil"
	"story-api/internal/handler/http/respond"
	storyUC "story-api/internal/usecase/story"
)

type UpdateHandler struct {
	Svc           storyUC.Service
	MaxUploadSize int64
}

// ServeHTTP replaces a story.
// @Summary      Update a story
// @Description  Replaces title, writer and content together. A new image replaces the stored one;
// @Description  removeImage=true clears it; with neither the image is kept. A new image wins over removeImage.
// @Tags         stories
// @Accept       multipart/form-data
// @Produce      json
// @Param        id             path      string  true   "Story ID"
// @Param        title          formData  string  true   "Title (max 200 characters)"
// @Param        writter        formData  string  true   "Writer (max 100 characters)"
// @Param        story_content  formData  string  true   "Content (max 10000 characters)"
// @Param        image          formData  file    false  "Replacement image"
// @Param        removeImage    formData  bool    false  "Clear the stored image"
// @Success      200 {object} respond.Envelope{data=DTO}
// @Failure      400 {object} respond.Envelope "Validation error, invalid ID, invalid file type or file too large"
// @Failure      404 {object} respond.Envelope "Story not found"
// @Failure      409 {object} respond.Envelope "A story with this title already exists"
// @Failure      429 {object} respond.Envelope "Too many requests"
// @Failure      500 {object} respond.Envelope "Internal server error"
// @Router       /api/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.StoryID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	form, err := parseStoryForm(w, r, h.MaxUploadSize)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	st, err := h.Svc.Update(r.Context(), storyUC.UpdateInput{
		ID:          id,
		Title:       form.Title,
		Writer:      form.Writer,
		Content:     form.Content,
		Image:       form.Image,
		RemoveImage: form.RemoveImage,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, http.StatusOK, toDTO(st), "Story updated successfully")
}
