package apperr

import (
	"errors"
	"net/http"
)

// HTTPStatus maps a service error to the HTTP status the boundary should
// return: 400 validation, 404 not found, 409 referential conflict, 500
// otherwise.
func HTTPStatus(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound
	}
	var ce *ConflictError
	if errors.As(err, &ce) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
