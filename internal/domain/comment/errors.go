package comment

import (
	"fmt"

	"github.com/rpggio/sena/internal/domain/domainerr"
)

var (
	// ErrCommentNotFound indicates the comment doesn't exist or was deleted.
	ErrCommentNotFound = fmt.Errorf("comment %w", domainerr.ErrNotFound)
	// ErrProjectNotFound indicates the commented project is missing or deleted.
	ErrProjectNotFound = fmt.Errorf("project %w", domainerr.ErrNotFound)
	// ErrEditNotAllowed indicates the actor is not the author or the edit
	// window has closed.
	ErrEditNotAllowed = fmt.Errorf("comments can only be edited by their author within 30 minutes: %w", domainerr.ErrPermissionDenied)
)
