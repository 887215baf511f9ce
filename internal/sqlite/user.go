package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/repository"
)

// UserRepository implements user.Repository and project.ActiveChecker
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, full_name, role, area, phone, active, registered_at`

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.FullName, u.Role, u.Area, u.Phone, boolInt(u.Active), formatTimestamp(u.RegisteredAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", constraintError(err))
	}
	return nil
}

// Get retrieves a user by ID, active or not
func (r *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// Search returns active users whose username contains query
func (r *UserRepository) Search(ctx context.Context, query string, limit int) ([]user.User, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE active = 1 AND username LIKE ? ESCAPE '\'
		 ORDER BY username
		 LIMIT ?`,
		likePattern(query), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Deactivate marks a user inactive
func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
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

// AreActive returns the IDs among ids that are not active users
func (r *UserRepository) AreActive(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM users WHERE active = 1 AND id IN (`+placeholders(len(ids))+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check users: %w", err)
	}
	defer rows.Close()

	active := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		active[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []string
	for _, id := range ids {
		if !active[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (*user.User, error) {
	var u user.User
	var active int
	var registeredAt string
	if err := s.Scan(&u.ID, &u.Username, &u.FullName, &u.Role, &u.Area, &u.Phone, &active, &registeredAt); err != nil {
		return nil, err
	}
	t, err := parseTimestamp(registeredAt)
	if err != nil {
		return nil, err
	}
	u.Active = active == 1
	u.RegisteredAt = t
	return &u, nil
}
