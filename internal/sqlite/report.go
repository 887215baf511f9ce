package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/domain/report"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/shopspring/decimal"
)

// ReportRepository implements report.Repository
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// CountByState counts active projects per state
func (r *ReportRepository) CountByState(ctx context.Context) (map[project.State]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT state, COUNT(*) FROM projects WHERE active = 1 GROUP BY state`)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by state: %w", err)
	}
	defer rows.Close()

	counts := make(map[project.State]int)
	for rows.Next() {
		var state project.State
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return nil, fmt.Errorf("failed to scan state count: %w", err)
		}
		counts[state] = n
	}
	return counts, rows.Err()
}

// TotalsByArea counts active projects and sums their budgets per area.
// Budgets are summed as decimals, never as floats.
func (r *ReportRepository) TotalsByArea(ctx context.Context) (map[user.Area]report.AreaTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT proposing_area, estimated_budget FROM projects WHERE active = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to total projects by area: %w", err)
	}
	defer rows.Close()

	totals := make(map[user.Area]report.AreaTotal)
	for rows.Next() {
		var area user.Area
		var budget decimal.Decimal
		if err := rows.Scan(&area, &budget); err != nil {
			return nil, fmt.Errorf("failed to scan area budget: %w", err)
		}
		t, ok := totals[area]
		if !ok {
			t.Budget = decimal.Zero
		}
		t.Count++
		t.Budget = t.Budget.Add(budget)
		totals[area] = t
	}
	return totals, rows.Err()
}

// TopUsers ranks active users by owned active projects, then comments
func (r *ReportRepository) TopUsers(ctx context.Context, limit int) ([]report.UserActivity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.username, u.full_name,
			(SELECT COUNT(*) FROM projects p WHERE p.responsible_id = u.id AND p.active = 1) AS owned,
			(SELECT COUNT(*) FROM comments c WHERE c.author_id = u.id AND c.active = 1) AS written
		 FROM users u
		 WHERE u.active = 1
		 ORDER BY owned DESC, written DESC, u.username
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to rank users: %w", err)
	}
	defer rows.Close()

	var out []report.UserActivity
	for rows.Next() {
		var a report.UserActivity
		if err := rows.Scan(&a.UserID, &a.Username, &a.FullName, &a.OwnedProjects, &a.Comments); err != nil {
			return nil, fmt.Errorf("failed to scan user activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// MostDiscussed ranks active projects by active comments, newest first on ties
func (r *ReportRepository) MostDiscussed(ctx context.Context, limit int) ([]report.ProjectActivity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.title, p.state, p.created_at,
			(SELECT COUNT(*) FROM comments c WHERE c.project_id = p.id AND c.active = 1) AS discussed
		 FROM projects p
		 WHERE p.active = 1
		 ORDER BY discussed DESC, p.created_at DESC, p.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to rank projects: %w", err)
	}
	defer rows.Close()

	var out []report.ProjectActivity
	for rows.Next() {
		var a report.ProjectActivity
		var createdAt string
		if err := rows.Scan(&a.ProjectID, &a.Title, &a.State, &createdAt, &a.Comments); err != nil {
			return nil, fmt.Errorf("failed to scan project activity: %w", err)
		}
		if a.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreationTimes returns the creation times of active projects created at or
// after since, oldest first
func (r *ReportRepository) CreationTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT created_at FROM projects WHERE active = 1 AND created_at >= ? ORDER BY created_at`,
		formatTimestamp(since),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list creation times: %w", err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan creation time: %w", err)
		}
		t, err := parseTimestamp(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
