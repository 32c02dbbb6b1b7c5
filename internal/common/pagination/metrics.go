package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts the total number of list requests.
	// Labels: status (HTTP status code), page_range (page bucket: 1-10, 11-50, etc.)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_pagination_requests_total",
			Help: "Total number of paginated list requests",
		},
		[]string{"status", "page_range"},
	)

	// DurationSeconds tracks list duration distribution.
	// Labels: operation (handler, service)
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_pagination_duration_seconds",
			Help:    "Paginated list duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	// TotalCount tracks the number of stories matched by the latest count query.
	TotalCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "story_pagination_last_total_items",
			Help: "Number of stories matched by the most recent paginated count",
		},
	)

	// ErrorsTotal counts pagination errors by type.
	// Labels: type (database, timeout)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_pagination_errors_total",
			Help: "Total number of paginated list errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a pagination request metric.
func RecordRequest(statusCode int, page int) {
	RequestsTotal.WithLabelValues(strconv.Itoa(statusCode), getPageRangeBucket(page)).Inc()
}

// RecordDuration records operation duration in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// UpdateTotalCount updates the matched item gauge.
func UpdateTotalCount(count int64) {
	TotalCount.Set(float64(count))
}

// RecordError records an error metric.
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// getPageRangeBucket returns the page range bucket for a given page number.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
