package errors

import (
	goerrors "errors"
	"net/http"
)

// HTTPStatus translates the error taxonomy into a response status.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case goerrors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case goerrors.Is(err, ErrAccessDenied), goerrors.Is(err, ErrSenderNotMember):
		return http.StatusForbidden
	case goerrors.Is(err, ErrRoomNotFound):
		return http.StatusNotFound
	case goerrors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
