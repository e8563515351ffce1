package httpapi

import (
	"errors"
	"net/http"

	"github.com/privafile/privafile/internal/common"
)

// statusFromError maps storage and identity errors to HTTP status codes.
// Unrecognized errors become 500 and their detail stays out of the response.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, common.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, common.ErrInvalidIdentifier),
		errors.Is(err, common.ErrInvalidArgument),
		errors.Is(err, common.ErrEmptyUpload),
		errors.Is(err, common.ErrMissingChunks),
		errors.Is(err, common.ErrInvalidUsername),
		errors.Is(err, common.ErrInvalidPassword):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage is what goes on the wire. Internal failures are masked.
func errorMessage(err error) string {
	if statusFromError(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
