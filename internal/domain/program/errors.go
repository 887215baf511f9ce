package program

import (
	"fmt"

	"github.com/rpggio/sena/internal/domain/domainerr"
)

// ErrProgramNotFound indicates the program doesn't exist.
var ErrProgramNotFound = fmt.Errorf("program %w", domainerr.ErrNotFound)
