package report

import (
	"context"
	"time"

	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/domain/user"
)

// Repository provides aggregates over active projects.
type Repository interface {
	CountByState(ctx context.Context) (map[project.State]int, error)
	TotalsByArea(ctx context.Context) (map[user.Area]AreaTotal, error)
	// TopUsers ranks active users by owned active projects.
	TopUsers(ctx context.Context, limit int) ([]UserActivity, error)
	// MostDiscussed ranks active projects by active comments, then by
	// creation time, newest first.
	MostDiscussed(ctx context.Context, limit int) ([]ProjectActivity, error)
	CreationTimes(ctx context.Context, since time.Time) ([]time.Time, error)
}

// ProjectReader lists and counts active projects.
type ProjectReader interface {
	List(ctx context.Context, opts project.ListOptions) ([]project.Project, error)
	Count(ctx context.Context, opts project.ListOptions) (int, error)
}
