package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/sena/internal/domain/comment"
	"github.com/rpggio/sena/internal/domain/history"
	"github.com/rpggio/sena/internal/repository"
)

// CommentRepository implements comment.Repository
type CommentRepository struct {
	db *DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `id, project_id, author_id, text, type, rating, parent_id, created_at, modified_at, active`

// Create inserts a comment and its history entries in one transaction
func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment, entries []history.Entry) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO comments (`+commentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.ProjectID, c.AuthorID, c.Text, c.Type, nullableInt(c.Rating), nullableString(c.ParentID),
			formatTimestamp(c.CreatedAt), formatTimestamp(c.ModifiedAt), boolInt(c.Active),
		)
		if err != nil {
			return fmt.Errorf("failed to create comment: %w", constraintError(err))
		}
		return appendHistory(ctx, tx, entries)
	})
}

// Get retrieves an active comment by ID
func (r *CommentRepository) Get(ctx context.Context, id string) (*comment.Comment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = ? AND active = 1`, id)
	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return c, nil
}

// Update stores the editable fields of a comment
func (r *CommentRepository) Update(ctx context.Context, c *comment.Comment) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comments SET text = ?, type = ?, rating = ?, modified_at = ?
		 WHERE id = ? AND active = 1`,
		c.Text, c.Type, nullableInt(c.Rating), formatTimestamp(c.ModifiedAt), c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListTopLevel returns the active top-level comments of a project, newest first
func (r *CommentRepository) ListTopLevel(ctx context.Context, projectID string) ([]comment.Comment, error) {
	return r.list(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE project_id = ? AND parent_id IS NULL AND active = 1
		 ORDER BY created_at DESC, id DESC`,
		projectID,
	)
}

// Replies returns the active replies to a comment, oldest first
func (r *CommentRepository) Replies(ctx context.Context, parentID string) ([]comment.Comment, error) {
	return r.list(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE parent_id = ? AND active = 1
		 ORDER BY created_at ASC, id ASC`,
		parentID,
	)
}

func (r *CommentRepository) list(ctx context.Context, query string, args ...any) ([]comment.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []comment.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

func scanComment(s rowScanner) (*comment.Comment, error) {
	var c comment.Comment
	var rating sql.NullInt64
	var parentID sql.NullString
	var createdAt, modifiedAt string
	var active int
	err := s.Scan(&c.ID, &c.ProjectID, &c.AuthorID, &c.Text, &c.Type, &rating, &parentID,
		&createdAt, &modifiedAt, &active)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		v := int(rating.Int64)
		c.Rating = &v
	}
	if parentID.Valid {
		c.ParentID = &parentID.String
	}
	if c.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if c.ModifiedAt, err = parseTimestamp(modifiedAt); err != nil {
		return nil, err
	}
	c.Active = active == 1
	return &c, nil
}
