package project

import (
	"time"

	"github.com/rpggio/sena/internal/domain/user"
)

// DefaultPageSize is the page size used when ListOptions.Limit is unset.
const DefaultPageSize = 10

// ListOptions provides filtering options for listing active projects.
// Results are ordered newest first.
type ListOptions struct {
	// Search matches title, description or general objectives.
	Search         string
	State          State
	Area           user.Area
	ResponsibleID  string
	CollaboratorID string
	// MemberID matches projects owned by or shared with a user.
	MemberID    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	// OverdueAsOf keeps running projects whose estimated end is before it.
	OverdueAsOf *time.Time
	Limit       int
	Offset      int
}
