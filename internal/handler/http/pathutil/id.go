package pathutil

import (
	"net/http"
	"strings"

	"mdd-backend/internal/domain/entity"
)

// ErrInvalidID is returned when a path segment that should hold an ID is blank.
var ErrInvalidID = entity.Invalid("invalid id")

// ID returns the trimmed value of the path wildcard name, as matched by
// http.ServeMux.
//
//	mux.HandleFunc("GET /api/articles/{id}", ...)
//	id, err := pathutil.ID(r, "id")
func ID(r *http.Request, name string) (string, error) {
	id := strings.TrimSpace(r.PathValue(name))
	if id == "" {
		return "", ErrInvalidID
	}
	return id, nil
}
