package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/sena/internal/domain/program"
	"github.com/rpggio/sena/internal/repository"
)

// ProgramRepository implements program.Repository
type ProgramRepository struct {
	db *DB
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

const programColumns = `id, code, name, level, modality, duration_months, duration_hours, description,
	competencies, graduate_profile, admission_requirements, training_center, regional, status, created_on`

// Create inserts a program
func (r *ProgramRepository) Create(ctx context.Context, p *program.Program) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO programs (`+programColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Code, p.Name, p.Level, p.Modality, p.DurationMonths, p.DurationHours, p.Description,
		p.Competencies, p.GraduateProfile, p.AdmissionRequirements, p.TrainingCenter, p.Regional, p.Status,
		formatDate(p.CreatedOn),
	)
	if err != nil {
		return fmt.Errorf("failed to create program: %w", constraintError(err))
	}
	return nil
}

// Get retrieves a program by ID
func (r *ProgramRepository) Get(ctx context.Context, id string) (*program.Program, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+programColumns+` FROM programs WHERE id = ?`, id)
	p, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return p, nil
}

// List returns programs matching opts, ordered by name
func (r *ProgramRepository) List(ctx context.Context, opts program.ListOptions) ([]program.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE 1 = 1`
	var args []any
	if opts.Search != "" {
		pattern := likePattern(opts.Search)
		query += ` AND (code LIKE ? ESCAPE '\' OR name LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	}
	if opts.Status != "" {
		query += ` AND status = ?`
		args = append(args, opts.Status)
	}
	if opts.Level != "" {
		query += ` AND level = ?`
		args = append(args, opts.Level)
	}
	query += ` ORDER BY name, code`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	var programs []program.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, *p)
	}
	return programs, rows.Err()
}

func scanProgram(s rowScanner) (*program.Program, error) {
	var p program.Program
	var createdOn string
	err := s.Scan(&p.ID, &p.Code, &p.Name, &p.Level, &p.Modality, &p.DurationMonths, &p.DurationHours,
		&p.Description, &p.Competencies, &p.GraduateProfile, &p.AdmissionRequirements,
		&p.TrainingCenter, &p.Regional, &p.Status, &createdOn)
	if err != nil {
		return nil, err
	}
	if p.CreatedOn, err = parseDate(createdOn); err != nil {
		return nil, err
	}
	return &p, nil
}
