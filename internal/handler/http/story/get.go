package story

import (
	"net/http"

	"story-api/internal/handler/http/pathutil"
	"story-api/internal/handler/http/respond"
	storyUC "story-api/internal/usecase/story"
)

type GetHandler struct{ Svc storyUC.Service }

// ServeHTTP returns one story.
// @Summary      Get a story
// @Description  Returns a story with image metadata. Image bytes are served by /api/{id}/image.
// @Tags         stories
// @Produce      json
// @Param        id   path      string  true  "Story ID"
// @Success      200 {object} respond.Envelope{data=DTO}
// @Failure      400 {object} respond.Envelope "Invalid story ID format"
// @Failure      404 {object} respond.Envelope "Story not found"
// @Failure      500 {object} respond.Envelope "Internal server error"
// @Router       /api/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.StoryID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	st, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, http.StatusOK, toDTO(st), "")
}
