// Package respond provides utilities for sending HTTP responses in JSON format.
// Every JSON body uses the envelope {success, data?, message?, pagination?} and
// Error is the single place where failures are turned into status codes and
// user-facing messages.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"story-api/internal/common/pagination"
	"story-api/internal/handler/http/requestid"
)

// Envelope is the uniform response body.
type Envelope struct {
	Success    bool                 `json:"success"`
	Data       any                  `json:"data,omitempty"`
	Message    string               `json:"message,omitempty"`
	Pagination *pagination.Metadata `json:"pagination,omitempty"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// OK writes a success envelope. message may be empty.
func OK(w http.ResponseWriter, code int, data any, message string) {
	JSON(w, code, Envelope{Success: true, Data: data, Message: message})
}

// Paginated writes a success envelope carrying pagination metadata.
func Paginated(w http.ResponseWriter, data any, md pagination.Metadata) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &md})
}

// Fail writes a failure envelope with a user-facing message.
func Fail(w http.ResponseWriter, code int, message string) {
	JSON(w, code, Envelope{Success: false, Message: message})
}

// Error classifies err, logs internal failures with credentials masked and
// writes the failure envelope. Nothing from err reaches the client unless
// it is a validation message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	code, msg := Classify(err)
	if code >= http.StatusInternalServerError {
		logger := slog.Default()
		if r != nil {
			logger = logger.With(
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))
		}
		logger.Error("internal server error",
			slog.Int("code", code),
			slog.String("error", SanitizeError(err)))
	}
	Fail(w, code, msg)
}
