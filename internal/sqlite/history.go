package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/sena/internal/domain/history"
)

// HistoryRepository implements history.Repository. Entries are written by
// the repositories of the rows they describe, inside their transactions.
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// List returns the entries of a project, newest first
func (r *HistoryRepository) List(ctx context.Context, projectID string, opts history.ListOptions) ([]history.Entry, error) {
	query := `SELECT id, project_id, actor_id, action, description, previous_state, new_state, created_at
	          FROM project_history WHERE project_id = ?`
	args := []any{projectID}

	if opts.Action != nil {
		query += " AND action = ?"
		args = append(args, *opts.Action)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var e history.Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.ActorID, &e.Action, &e.Description,
			&e.PreviousState, &e.NewState, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// appendHistory inserts entries within tx, filling in their IDs.
func appendHistory(ctx context.Context, tx *sql.Tx, entries []history.Entry) error {
	for i := range entries {
		e := &entries[i]
		result, err := tx.ExecContext(ctx,
			`INSERT INTO project_history (project_id, actor_id, action, description, previous_state, new_state, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ProjectID, e.ActorID, e.Action, e.Description, e.PreviousState, e.NewState, formatTimestamp(e.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to append history: %w", constraintError(err))
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get history id: %w", err)
		}
		e.ID = id
	}
	return nil
}
