package document

import (
	"fmt"

	"github.com/rpggio/sena/internal/domain/domainerr"
)

// ErrProjectNotFound indicates the target project is missing or deleted.
var ErrProjectNotFound = fmt.Errorf("project %w", domainerr.ErrNotFound)
