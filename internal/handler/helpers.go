package handler

import (
	"errors"
	"net/http"

	"threadline/internal/domain"
	"threadline/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var (
		pathErr   *domain.PathExistsError
		decodeErr *domain.PayloadDecodeError
	)

	switch {
	case errors.As(err, &pathErr):
		httputil.RespondConflict(w, pathErr.Error(), pathErr.Kind, pathErr.Path, pathErr.ResourceID)
	case errors.As(err, &decodeErr):
		httputil.RespondError(w, http.StatusUnprocessableEntity, decodeErr.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID returns the {id} path value, writing a 400 when it is missing
func pathID(w http.ResponseWriter, r *http.Request, what string) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, what+" ID is required")
		return "", false
	}
	return id, true
}
