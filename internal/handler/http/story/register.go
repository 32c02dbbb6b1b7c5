package story

import (
	"log/slog"
	"net/http"

	"story-api/internal/common/pagination"
	storyUC "story-api/internal/usecase/story"
)

// Config carries the request-level limits the handlers enforce.
type Config struct {
	Pagination    pagination.Config
	MaxUploadSize int64
}

// Register registers all story-related HTTP handlers with the given mux.
// The static /api/stats route wins over /api/{id} by pattern specificity.
func Register(mux *http.ServeMux, svc storyUC.Service, cfg Config, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	mux.Handle("GET /api", ListHandler{Svc: svc, PaginationCfg: cfg.Pagination, Logger: logger})
	mux.Handle("GET /api/stats", StatsHandler{Svc: svc})
	mux.Handle("GET /api/{id}", GetHandler{Svc: svc})
	mux.Handle("GET /api/{id}/image", ImageHandler{Svc: svc})

	mux.Handle("POST /api", CreateHandler{Svc: svc, MaxUploadSize: cfg.MaxUploadSize})
	mux.Handle("PUT /api/{id}", UpdateHandler{Svc: svc, MaxUploadSize: cfg.MaxUploadSize})
	mux.Handle("DELETE /api/{id}", DeleteHandler{Svc: svc})
}
