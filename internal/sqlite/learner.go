package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/sena/internal/domain/learner"
	"github.com/rpggio/sena/internal/repository"
)

// LearnerRepository implements learner.Repository
type LearnerRepository struct {
	db *DB
}

// NewLearnerRepository creates a new learner repository
func NewLearnerRepository(db *DB) *LearnerRepository {
	return &LearnerRepository{db: db}
}

const learnerColumns = `id, document_number, first_name, last_name, program, phone, email, birth_date, city, registered_at, active`

// ExistsActiveDocument reports whether an active learner holds documentNumber
func (r *LearnerRepository) ExistsActiveDocument(ctx context.Context, documentNumber string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM learners WHERE document_number = ? AND active = 1`, documentNumber,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check document number: %w", err)
	}
	return n > 0, nil
}

// Create inserts a learner
func (r *LearnerRepository) Create(ctx context.Context, l *learner.Learner) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO learners (`+learnerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.DocumentNumber, l.FirstName, l.LastName, l.Program, l.Phone, l.Email,
		formatDate(l.BirthDate), l.City, formatTimestamp(l.RegisteredAt), boolInt(l.Active),
	)
	if err != nil {
		return fmt.Errorf("failed to create learner: %w", constraintError(err))
	}
	return nil
}

// Get retrieves an active learner by ID
func (r *LearnerRepository) Get(ctx context.Context, id string) (*learner.Learner, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+learnerColumns+` FROM learners WHERE id = ? AND active = 1`, id)
	l, err := scanLearner(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learner: %w", err)
	}
	return l, nil
}

// List returns active learners whose names, document number or program
// contain search
func (r *LearnerRepository) List(ctx context.Context, search string) ([]learner.Learner, error) {
	query := `SELECT ` + learnerColumns + ` FROM learners WHERE active = 1`
	var args []any
	if search != "" {
		pattern := likePattern(search)
		query += ` AND (first_name LIKE ? ESCAPE '\' OR last_name LIKE ? ESCAPE '\'
			OR document_number LIKE ? ESCAPE '\' OR program LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern, pattern, pattern)
	}
	query += ` ORDER BY last_name, first_name, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list learners: %w", err)
	}
	defer rows.Close()

	var learners []learner.Learner
	for rows.Next() {
		l, err := scanLearner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan learner: %w", err)
		}
		learners = append(learners, *l)
	}
	return learners, rows.Err()
}

// SoftDelete marks a learner inactive, freeing its document number
func (r *LearnerRepository) SoftDelete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE learners SET active = 0 WHERE id = ? AND active = 1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete learner: %w", err)
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

// Stats counts active learners and their programs
func (r *LearnerRepository) Stats(ctx context.Context) (learner.Stats, error) {
	var s learner.Stats
	err := r.db.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COUNT(CASE WHEN program <> '' THEN 1 END),
			COUNT(DISTINCT CASE WHEN program <> '' THEN program END)
		 FROM learners WHERE active = 1`,
	).Scan(&s.Total, &s.WithProgram, &s.Programs)
	if err != nil {
		return learner.Stats{}, fmt.Errorf("failed to compute learner stats: %w", err)
	}
	return s, nil
}

func scanLearner(s rowScanner) (*learner.Learner, error) {
	var l learner.Learner
	var birthDate, registeredAt string
	var active int
	err := s.Scan(&l.ID, &l.DocumentNumber, &l.FirstName, &l.LastName, &l.Program, &l.Phone,
		&l.Email, &birthDate, &l.City, &registeredAt, &active)
	if err != nil {
		return nil, err
	}
	if l.BirthDate, err = parseDate(birthDate); err != nil {
		return nil, err
	}
	if l.RegisteredAt, err = parseTimestamp(registeredAt); err != nil {
		return nil, err
	}
	l.Active = active == 1
	return &l, nil
}
