package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sipas-org/sipas-api/internal/auth"
	"github.com/sipas-org/sipas-api/internal/crud"
	"github.com/sipas-org/sipas-api/internal/http/respond"
	"github.com/sipas-org/sipas-api/internal/storage"
)

var errInvalidPayload = &crud.ValidationError{Msg: "invalid JSON payload"}

// writeError maps service errors onto HTTP statuses. Unexpected errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		fieldErrs validator.ValidationErrors
		notFound  *crud.NotFoundError
		conflict  *crud.ConflictError
	)
	switch {
	case errors.As(err, &fieldErrs):
		respond.Error(w, r, http.StatusBadRequest, validationMessage(fieldErrs))
	case crud.IsValidation(err):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrInvalidReference):
		respond.Error(w, r, http.StatusBadRequest, "referenced record does not exist")
	case errors.Is(err, auth.ErrUnitNotAllowed):
		respond.Error(w, r, http.StatusForbidden, err.Error())
	case errors.As(err, &notFound):
		respond.Error(w, r, http.StatusNotFound, notFound.Error())
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "record not found")
	case errors.As(err, &conflict):
		respond.Error(w, r, http.StatusConflict, conflict.Error())
	case errors.Is(err, storage.ErrAlreadyExists):
		respond.Error(w, r, http.StatusConflict, "record already exists")
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respond.Error(w, r, http.StatusInternalServerError, "internal server error")
	}
}
