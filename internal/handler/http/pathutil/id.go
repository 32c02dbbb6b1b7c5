package pathutil

import (
	"fmt"
	"net/http"
	"strings"

	"story-api/internal/domain/entity"
)

// maxIDLength bounds path identifiers; every store id format is far shorter.
const maxIDLength = 64

// StoryID returns the {id} path value of a route registered as "/api/{id}".
// Format checks are left to the store, which knows its own id shape; this
// only rejects values no store could accept.
//
// Example:
//
//	id, err := StoryID(r) // r.URL.Path == "/api/65f1c0ffee"
//	// Returns: "65f1c0ffee", nil
func StoryID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" || len(id) > maxIDLength {
		return "", fmt.Errorf("path id %q: %w", id, entity.ErrInvalidID)
	}
	return id, nil
}
