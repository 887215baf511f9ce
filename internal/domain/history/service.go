package history

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DefaultLimit is the number of entries shown on a project page.
const DefaultLimit = 10

// Service handles history queries.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new history service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// List returns a project's entries, newest first. Entries of soft-deleted
// projects stay readable.
func (s *Service) List(ctx context.Context, projectID string, opts ListOptions) ([]Entry, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	entries, err := s.repo.List(ctx, projectID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return entries, nil
}
