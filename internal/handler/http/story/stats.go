package story

import (
	"net/http"

	"story-api/internal/handler/http/respond"
	storyUC "story-api/internal/usecase/story"
)

type StatsHandler struct{ Svc storyUC.Service }

// ServeHTTP returns collection statistics.
// @Summary      Story statistics
// @Description  Totals, distinct writers, image coverage, average content length and the newest story time.
// @Tags         stories
// @Produce      json
// @Success      200 {object} respond.Envelope{data=StatsDTO}
// @Failure      500 {object} respond.Envelope "Internal server error"
// @Router       /api/stats [get]
func (h StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, http.StatusOK, toStatsDTO(stats), "")
}
