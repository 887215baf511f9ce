package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/sena/internal/domain/history"
	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/repository"
)

// ProjectRepository implements project.Repository and the project checks
// used by comments and documents
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `p.id, p.title, p.description, p.proposing_area, p.responsible_id,
	p.general_objectives, p.specific_objectives, p.scope, p.limitations, p.estimated_budget,
	p.tentative_schedule, p.required_resources, p.expected_beneficiaries, p.success_indicators,
	p.state, p.completion_percentage, p.created_at, p.estimated_start, p.estimated_end,
	p.actual_end, p.active, p.version`

// Create inserts a project, its collaborators and entries in one transaction
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project, entries []history.Entry) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, title, description, proposing_area, responsible_id,
				general_objectives, specific_objectives, scope, limitations, estimated_budget,
				tentative_schedule, required_resources, expected_beneficiaries, success_indicators,
				state, completion_percentage, created_at, estimated_start, estimated_end,
				actual_end, active, version)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, p.Description, p.ProposingArea, p.ResponsibleID,
			p.GeneralObjectives, p.SpecificObjectives, p.Scope, p.Limitations, p.EstimatedBudget.StringFixed(2),
			p.TentativeSchedule, p.RequiredResources, p.ExpectedBeneficiaries, p.SuccessIndicators,
			p.State, p.CompletionPercentage, formatTimestamp(p.CreatedAt),
			nullableDate(p.EstimatedStart), nullableDate(p.EstimatedEnd), nullableDate(p.ActualEnd),
			boolInt(p.Active), p.Version,
		)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", constraintError(err))
		}
		if err := insertCollaborators(ctx, tx, p.ID, p.CollaboratorIDs); err != nil {
			return err
		}
		return appendHistory(ctx, tx, entries)
	})
}

// Get retrieves an active project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects p WHERE p.id = ? AND p.active = 1`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	collaborators, err := r.collaborators(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	p.CollaboratorIDs = collaborators[id]
	return p, nil
}

// Update stores p with optimistic locking on the version and appends entries
// in the same transaction
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project, expectedVersion int, entries []history.Entry) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE projects SET
				title = ?, description = ?, proposing_area = ?, responsible_id = ?,
				general_objectives = ?, specific_objectives = ?, scope = ?, limitations = ?,
				estimated_budget = ?, tentative_schedule = ?, required_resources = ?,
				expected_beneficiaries = ?, success_indicators = ?, state = ?,
				completion_percentage = ?, estimated_start = ?, estimated_end = ?, actual_end = ?,
				version = ?
			 WHERE id = ? AND version = ? AND active = 1`,
			p.Title, p.Description, p.ProposingArea, p.ResponsibleID,
			p.GeneralObjectives, p.SpecificObjectives, p.Scope, p.Limitations,
			p.EstimatedBudget.StringFixed(2), p.TentativeSchedule, p.RequiredResources,
			p.ExpectedBeneficiaries, p.SuccessIndicators, p.State,
			p.CompletionPercentage, nullableDate(p.EstimatedStart), nullableDate(p.EstimatedEnd), nullableDate(p.ActualEnd),
			p.Version,
			p.ID, expectedVersion,
		)
		if err != nil {
			return fmt.Errorf("failed to update project: %w", constraintError(err))
		}
		if err := checkVersioned(ctx, tx, result, p.ID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM project_collaborators WHERE project_id = ?`, p.ID); err != nil {
			return fmt.Errorf("failed to clear collaborators: %w", err)
		}
		if err := insertCollaborators(ctx, tx, p.ID, p.CollaboratorIDs); err != nil {
			return err
		}
		return appendHistory(ctx, tx, entries)
	})
}

// SoftDelete marks a project inactive if its version still matches
func (r *ProjectRepository) SoftDelete(ctx context.Context, id string, expectedVersion int, entries []history.Entry) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE projects SET active = 0 WHERE id = ? AND version = ? AND active = 1`,
			id, expectedVersion,
		)
		if err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		if err := checkVersioned(ctx, tx, result, id); err != nil {
			return err
		}
		return appendHistory(ctx, tx, entries)
	})
}

// List returns active projects matching opts, newest first
func (r *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, error) {
	where, args := projectFilter(opts)
	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects p WHERE `+where+`
		 ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return projects, nil
	}

	ids := make([]string, len(projects))
	for i := range projects {
		ids[i] = projects[i].ID
	}
	collaborators, err := r.collaborators(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].CollaboratorIDs = collaborators[projects[i].ID]
	}
	return projects, nil
}

// Count returns the number of active projects matching opts
func (r *ProjectRepository) Count(ctx context.Context, opts project.ListOptions) (int, error) {
	where, args := projectFilter(opts)
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects p WHERE `+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}

// Counts returns the active related rows of a project
func (r *ProjectRepository) Counts(ctx context.Context, id string) (project.Counts, error) {
	var c project.Counts
	err := r.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM comments WHERE project_id = ? AND active = 1),
			(SELECT COUNT(*) FROM documents WHERE project_id = ? AND active = 1),
			(SELECT COUNT(*) FROM project_collaborators WHERE project_id = ?)`,
		id, id, id,
	).Scan(&c.Comments, &c.Documents, &c.Collaborators)
	if err != nil {
		return project.Counts{}, fmt.Errorf("failed to count project relations: %w", err)
	}
	return c, nil
}

// IsActive reports whether a project exists and is not deleted
func (r *ProjectRepository) IsActive(ctx context.Context, projectID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE id = ? AND active = 1`, projectID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check project: %w", err)
	}
	return n > 0, nil
}

func (r *ProjectRepository) collaborators(ctx context.Context, projectIDs []string) (map[string][]string, error) {
	args := make([]any, len(projectIDs))
	for i, id := range projectIDs {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_id, user_id FROM project_collaborators
		 WHERE project_id IN (`+placeholders(len(projectIDs))+`)
		 ORDER BY project_id, user_id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var projectID, userID string
		if err := rows.Scan(&projectID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan collaborator: %w", err)
		}
		out[projectID] = append(out[projectID], userID)
	}
	return out, rows.Err()
}

func insertCollaborators(ctx context.Context, tx *sql.Tx, projectID string, userIDs []string) error {
	for _, userID := range userIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO project_collaborators (project_id, user_id) VALUES (?, ?)`,
			projectID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to add collaborator: %w", constraintError(err))
		}
	}
	return nil
}

// checkVersioned tells a missing project from a stale version when a
// versioned write matched no row.
func checkVersioned(ctx context.Context, tx *sql.Tx, result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var n int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE id = ? AND active = 1`, id).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

func projectFilter(opts project.ListOptions) (string, []any) {
	conditions := []string{"p.active = 1"}
	var args []any

	if opts.Search != "" {
		pattern := likePattern(opts.Search)
		conditions = append(conditions,
			`(p.title LIKE ? ESCAPE '\' OR p.description LIKE ? ESCAPE '\' OR p.general_objectives LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	if opts.State != "" {
		conditions = append(conditions, "p.state = ?")
		args = append(args, opts.State)
	}
	if opts.Area != "" {
		conditions = append(conditions, "p.proposing_area = ?")
		args = append(args, opts.Area)
	}
	if opts.ResponsibleID != "" {
		conditions = append(conditions, "p.responsible_id = ?")
		args = append(args, opts.ResponsibleID)
	}
	if opts.CollaboratorID != "" {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM project_collaborators pc WHERE pc.project_id = p.id AND pc.user_id = ?)")
		args = append(args, opts.CollaboratorID)
	}
	if opts.MemberID != "" {
		conditions = append(conditions,
			"(p.responsible_id = ? OR EXISTS (SELECT 1 FROM project_collaborators pc WHERE pc.project_id = p.id AND pc.user_id = ?))")
		args = append(args, opts.MemberID, opts.MemberID)
	}
	if opts.CreatedFrom != nil {
		conditions = append(conditions, "p.created_at >= ?")
		args = append(args, formatTimestamp(*opts.CreatedFrom))
	}
	if opts.CreatedTo != nil {
		conditions = append(conditions, "p.created_at < ?")
		args = append(args, formatTimestamp(opts.CreatedTo.AddDate(0, 0, 1)))
	}
	if opts.OverdueAsOf != nil {
		conditions = append(conditions,
			"p.state IN (?, ?) AND p.estimated_end IS NOT NULL AND p.estimated_end < ?")
		args = append(args, project.StateApproved, project.StateInExecution, formatDate(*opts.OverdueAsOf))
	}

	return strings.Join(conditions, " AND "), args
}

func scanProject(s rowScanner) (*project.Project, error) {
	var p project.Project
	var createdAt string
	var start, end, actualEnd sql.NullString
	var active int
	err := s.Scan(
		&p.ID, &p.Title, &p.Description, &p.ProposingArea, &p.ResponsibleID,
		&p.GeneralObjectives, &p.SpecificObjectives, &p.Scope, &p.Limitations, &p.EstimatedBudget,
		&p.TentativeSchedule, &p.RequiredResources, &p.ExpectedBeneficiaries, &p.SuccessIndicators,
		&p.State, &p.CompletionPercentage, &createdAt, &start, &end,
		&actualEnd, &active, &p.Version,
	)
	if err != nil {
		return nil, err
	}

	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if p.EstimatedStart, err = parseNullDate(start); err != nil {
		return nil, err
	}
	if p.EstimatedEnd, err = parseNullDate(end); err != nil {
		return nil, err
	}
	if p.ActualEnd, err = parseNullDate(actualEnd); err != nil {
		return nil, err
	}
	p.Active = active == 1
	return &p, nil
}
