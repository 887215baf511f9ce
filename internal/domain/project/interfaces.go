package project

import (
	"context"

	"github.com/rpggio/sena/internal/domain/history"
)

// Repository provides persistence for projects. Every write commits its
// history entries in the same transaction.
type Repository interface {
	Create(ctx context.Context, p *Project, entries []history.Entry) error
	// Get returns an active project.
	Get(ctx context.Context, id string) (*Project, error)
	// Update stores p if the stored version still equals expectedVersion.
	Update(ctx context.Context, p *Project, expectedVersion int, entries []history.Entry) error
	SoftDelete(ctx context.Context, id string, expectedVersion int, entries []history.Entry) error
	List(ctx context.Context, opts ListOptions) ([]Project, error)
	Count(ctx context.Context, opts ListOptions) (int, error)
	Counts(ctx context.Context, id string) (Counts, error)
}

// ActiveChecker reports which of the given user IDs are not active users.
type ActiveChecker interface {
	AreActive(ctx context.Context, ids []string) (missing []string, err error)
}
