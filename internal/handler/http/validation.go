package http

import (
	"net/http"

	"story-api/internal/handler/http/respond"
)

// MaxPathLength bounds the request path.
const MaxPathLength = 2048

// InputValidation returns middleware that rejects oversized request paths
// with 414 and caps every request body at maxBody bytes.
//
// Story handlers apply their own tighter cap derived from the upload limit;
// this one bounds everything else.
func InputValidation(maxBody int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > MaxPathLength {
				respond.Fail(w, http.StatusRequestURITooLong, "URI too long")
				return
			}
			if maxBody > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBody)
			}
			next.ServeHTTP(w, r)
		})
	}
}
