package pagination

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// ParseQueryParams parses pagination parameters from the request query string.
// It never fails: missing, unparsable or non-positive values fall back to the
// configured defaults and a limit above config.MaxLimit is capped.
func ParseQueryParams(r *http.Request, config Config) Params {
	q := r.URL.Query()
	params := Params{
		Page:  parsePositive(q.Get("page")),
		Limit: parsePositive(q.Get("limit")),
	}
	return params.WithDefaults(config)
}

// parsePositive returns 0 for anything that is not a positive integer.
// Positive values too large for an int saturate; WithDefaults caps them.
func parsePositive(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return n
	}
	if err != nil || n < 1 {
		return 0
	}
	return n
}
