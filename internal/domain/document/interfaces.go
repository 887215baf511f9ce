package document

import (
	"context"

	"github.com/rpggio/sena/internal/domain/history"
)

// Repository provides persistence for document metadata.
type Repository interface {
	// Create stores d and entries in one transaction.
	Create(ctx context.Context, d *Document, entries []history.Entry) error
	List(ctx context.Context, projectID string) ([]Document, error)
}

// ProjectChecker reports whether a project exists and is active.
type ProjectChecker interface {
	IsActive(ctx context.Context, projectID string) (bool, error)
}
