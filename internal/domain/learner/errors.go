package learner

import (
	"fmt"

	"github.com/rpggio/sena/internal/domain/domainerr"
)

// ErrLearnerNotFound indicates the learner doesn't exist or was deleted.
var ErrLearnerNotFound = fmt.Errorf("learner %w", domainerr.ErrNotFound)
