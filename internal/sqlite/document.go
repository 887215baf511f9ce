package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/sena/internal/domain/document"
	"github.com/rpggio/sena/internal/domain/history"
)

// DocumentRepository implements document.Repository
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts document metadata and its history entries in one transaction
func (r *DocumentRepository) Create(ctx context.Context, d *document.Document, entries []history.Entry) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO documents (id, project_id, author_id, file_name, type, description, version, size_bytes, uploaded_at, active)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.ProjectID, d.AuthorID, d.FileName, d.Type, d.Description, d.Version, d.SizeBytes,
			formatTimestamp(d.UploadedAt), boolInt(d.Active),
		)
		if err != nil {
			return fmt.Errorf("failed to create document: %w", constraintError(err))
		}
		return appendHistory(ctx, tx, entries)
	})
}

// List returns the active documents of a project, newest first
func (r *DocumentRepository) List(ctx context.Context, projectID string) ([]document.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, author_id, file_name, type, description, version, size_bytes, uploaded_at, active
		 FROM documents WHERE project_id = ? AND active = 1
		 ORDER BY uploaded_at DESC, id DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		var d document.Document
		var uploadedAt string
		var active int
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.AuthorID, &d.FileName, &d.Type, &d.Description,
			&d.Version, &d.SizeBytes, &uploadedAt, &active); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if d.UploadedAt, err = parseTimestamp(uploadedAt); err != nil {
			return nil, err
		}
		d.Active = active == 1
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
