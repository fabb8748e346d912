package crud

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sipas-org/sipas-api/internal/storage"
)

var (
	// ErrCreateFailed is returned when an insert yields no row.
	ErrCreateFailed = errors.New("failed to create record")
	// ErrUpdateFailed is returned when an update yields no row.
	ErrUpdateFailed = errors.New("failed to update record")
)

// NotFoundError reports a missing id. It matches storage.ErrNotFound.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == storage.ErrNotFound }

// ConflictError reports that a unique key is already taken. It matches
// storage.ErrAlreadyExists.
type ConflictError struct {
	Resource string
	Fields   []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with the same %s already exists", e.Resource, strings.Join(e.Fields, ", "))
}

func (e *ConflictError) Is(target error) bool { return target == storage.ErrAlreadyExists }

// ValidationError reports input rejected before reaching the store.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

var errNoWritableFields = &ValidationError{Msg: "request contains no writable fields"}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
