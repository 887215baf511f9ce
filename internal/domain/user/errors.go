package user

import (
	"fmt"

	"github.com/rpggio/sena/internal/domain/domainerr"
)

var (
	// ErrUserNotFound indicates the user doesn't exist or is inactive.
	ErrUserNotFound = fmt.Errorf("user %w", domainerr.ErrNotFound)
	// ErrNotAdmin indicates the operation requires an administrator.
	ErrNotAdmin = fmt.Errorf("administrator role required: %w", domainerr.ErrPermissionDenied)
	// ErrNotManager indicates the operation requires an administrator or
	// coordinator.
	ErrNotManager = fmt.Errorf("administrator or coordinator role required: %w", domainerr.ErrPermissionDenied)
)
