package story

import (
	"net/http"

	"story-api/internal/handler/http/pathutil"
	"story-api/internal/handler/http/respond"
	storyUC "story-api/internal/usecase/story"
)

type DeleteHandler struct{ Svc storyUC.Service }

// ServeHTTP deletes a story and its image.
// @Summary      Delete a story
// @Tags         stories
// @Produce      json
// @Param        id   path      string  true  "Story ID"
// @Success      200 {object} respond.Envelope "Story deleted successfully"
// @Failure      400 {object} respond.Envelope "Invalid story ID format"
// @Failure      404 {object} respond.Envelope "Story not found"
// @Failure      500 {object} respond.Envelope "Internal server error"
// @Router       /api/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.StoryID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, http.StatusOK, nil, "Story deleted successfully")
}
