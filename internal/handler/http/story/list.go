package story

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"story-api/internal/common/pagination"
	"story-api/internal/handler/http/requestid"
	"story-api/internal/handler/http/respond"
	"story-api/internal/observability/logging"
	storyUC "story-api/internal/usecase/story"
)

type ListHandler struct {
	Svc           storyUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP lists stories.
// @Summary      List stories
// @Description  Returns stories newest first. search matches title, writer or content case-insensitively.
// @Description  Unparsable or non-positive page/limit values fall back to the defaults; limit is capped at the maximum.
// @Tags         stories
// @Produce      json
// @Param        page    query    int     false  "Page number (1-based)" default(1) minimum(1)
// @Param        limit   query    int     false  "Items per page" default(10) minimum(1) maximum(50)
// @Param        search  query    string  false  "Substring to search for"
// @Success      200 {object} respond.Envelope{data=[]DTO,pagination=pagination.Metadata} "Paginated stories"
// @Failure      429 {object} respond.Envelope "Too many requests"
// @Failure      500 {object} respond.Envelope "Internal server error"
// @Router       /api [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params := pagination.ParseQueryParams(r, h.PaginationCfg)
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	pagination.LogRequest(logger, reqID, search, params)

	result, err := h.Svc.List(ctx, storyUC.ListInput{Params: params, Search: search})
	if err != nil {
		pagination.LogError(logger, reqID, params, err, "database")
		pagination.RecordError("database")
		respond.Error(w, r, err)
		return
	}

	dtos := toDTOs(result.Stories)

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, result.Pagination.Current)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.LogResponse(logger, reqID, params, len(dtos), duration, http.StatusOK)

	respond.Paginated(w, dtos, result.Pagination)
}
