package project

import (
	"errors"
	"fmt"

	"github.com/rpggio/sena/internal/domain/domainerr"
)

var (
	// ErrProjectNotFound indicates the project doesn't exist or was deleted.
	ErrProjectNotFound = fmt.Errorf("project %w", domainerr.ErrNotFound)
	// ErrEditNotAllowed indicates the actor is neither owner nor manager.
	ErrEditNotAllowed = fmt.Errorf("only the responsible user or a manager may edit the project: %w", domainerr.ErrPermissionDenied)
	// ErrDeleteNotAllowed indicates the actor is not a manager.
	ErrDeleteNotAllowed = fmt.Errorf("only administrators and coordinators may delete projects: %w", domainerr.ErrPermissionDenied)
	// ErrProjectConflict indicates the project changed since it was read.
	ErrProjectConflict = fmt.Errorf("project %w", domainerr.ErrConflict)
	// ErrInvalidTransition indicates a state change not allowed by the lifecycle.
	ErrInvalidTransition = errors.New("invalid state transition")
)
