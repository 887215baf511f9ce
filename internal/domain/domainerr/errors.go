// Package domainerr defines the error kinds shared by every entity service.
//
// Entity packages wrap these kinds in their own sentinels, so callers can test
// either the specific error (project.ErrProjectNotFound) or the kind
// (domainerr.ErrNotFound) with errors.Is.
package domainerr

import (
	"errors"
	"fmt"

	"github.com/rpggio/sena/internal/repository"
)

var (
	// ErrNotFound indicates a referenced entity is missing or soft-deleted.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied indicates the actor may not perform the mutation.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrConflict indicates the entity changed since it was read.
	ErrConflict = errors.New("modified concurrently")
)

// PersistenceError reports a failed store operation.
type PersistenceError struct {
	Op  string
	Err error
}

// Persistence wraps err as a PersistenceError for op.
func Persistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Constraint reports whether the failure is a data constraint violation
// that the user can correct, as opposed to an infrastructure failure.
func (e *PersistenceError) Constraint() bool {
	return errors.Is(e.Err, repository.ErrUniqueViolation) ||
		errors.Is(e.Err, repository.ErrForeignKeyViolation)
}

// IsInfrastructure reports whether err is a persistence failure that is not
// a constraint violation.
func IsInfrastructure(err error) bool {
	var perr *PersistenceError
	if errors.As(err, &perr) {
		return !perr.Constraint()
	}
	return false
}
