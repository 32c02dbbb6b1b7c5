package story

import (
	"mime"
	"net/http"
	"strconv"

	"story-api/internal/handler/http/pathutil"
	"story-api/internal/handler/http/respond"
	storyUC "story-api/internal/usecase/story"
)

// imageCacheControl lets clients and proxies cache image bytes for a day.
const imageCacheControl = "public, max-age=86400"

type ImageHandler struct{ Svc storyUC.Service }

// ServeHTTP writes the raw image bytes of a story.
// @Summary      Get a story image
// @Description  Returns the image bytes with their stored content type. This route does not use the JSON envelope on success.
// @Tags         stories
// @Produce      image/jpeg,image/png,image/gif,image/webp
// @Param        id   path      string  true  "Story ID"
// @Success      200 {file} binary
// @Failure      400 {object} respond.Envelope "Invalid story ID format"
// @Failure      404 {object} respond.Envelope "Story or image not found"
// @Failure      500 {object} respond.Envelope "Internal server error"
// @Router       /api/{id}/image [get]
func (h ImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.StoryID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	img, err := h.Svc.GetImage(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	hdr := w.Header()
	hdr.Set("Content-Type", img.ContentType)
	hdr.Set("Content-Length", strconv.Itoa(len(img.Data)))
	hdr.Set("Cache-Control", imageCacheControl)
	if img.Filename != "" {
		hdr.Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": img.Filename}))
	} else {
		hdr.Set("Content-Disposition", "inline")
	}
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(img.Data)
	}
}
