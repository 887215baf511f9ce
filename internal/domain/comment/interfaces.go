package comment

import (
	"context"

	"github.com/rpggio/sena/internal/domain/history"
)

// Repository provides persistence for comments.
type Repository interface {
	// Create stores c and entries in one transaction.
	Create(ctx context.Context, c *Comment, entries []history.Entry) error
	// Get returns an active comment.
	Get(ctx context.Context, id string) (*Comment, error)
	Update(ctx context.Context, c *Comment) error
	ListTopLevel(ctx context.Context, projectID string) ([]Comment, error)
	Replies(ctx context.Context, parentID string) ([]Comment, error)
}

// ProjectChecker reports whether a project exists and is active.
type ProjectChecker interface {
	IsActive(ctx context.Context, projectID string) (bool, error)
}
