package handler

import (
	"errors"
	"net/http"

	"github.com/toolhunt/toolhunt/internal/domain"
)

// statusForError maps domain errors to HTTP status codes.
// Parameters:
//   - err: error returned by a service call.
// Returns:
//   - int: HTTP status code.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateVideo):
		return http.StatusConflict
	case errors.Is(err, domain.ErrReviewFinalized):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrTranscriptUnavailable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
