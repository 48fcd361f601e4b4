package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"user_accounts/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (id, name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`

	selectUserByEmailSQL = `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id = ?`

	updateEmailSQL    = `UPDATE users SET email = ?, updated_at = ? WHERE id = ?`
	updatePasswordSQL = `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`
	deleteUserSQL     = `DELETE FROM users WHERE id = ?`
	selectNamesSQL    = `SELECT name FROM users`
)

// Create inserts a new user. A violation of the UNIQUE email index is
// reported as ErrEmailTaken so the caller can answer with a conflict.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email))
	if err != nil {
		return nil, fmt.Errorf("select user by email %q: %w", email, err)
	}
	return u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user by id %q: %w", id, err)
	}
	return u, nil
}

// UpdateEmail rewrites the email of the user with the given id.
func (r *UserRepository) UpdateEmail(ctx context.Context, id, newEmail string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, updateEmailSQL, newEmail, updatedAt, id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return ErrEmailTaken
		}
		return fmt.Errorf("update email for user %q: %w", id, err)
	}
	return requireRowChanged(res, "update email", id)
}

// UpdatePassword rewrites the password hash of the user with the given id.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, updatePasswordSQL, passwordHash, updatedAt, id)
	if err != nil {
		return fmt.Errorf("update password for user %q: %w", id, err)
	}
	return requireRowChanged(res, "update password", id)
}

// Delete removes the user with the given id.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteUserSQL, id)
	if err != nil {
		return fmt.Errorf("delete user %q: %w", id, err)
	}
	return requireRowChanged(res, "delete user", id)
}

// ListNames returns the name of every user in store iteration order.
func (r *UserRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectNamesSQL)
	if err != nil {
		return nil, fmt.Errorf("select user names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan user name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user names: %w", err)
	}
	return names, nil
}

// scanUser maps a single-row result into a User, treating ErrNoRows as
// (nil, nil) so lookups distinguish "absent" from real failures.
func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// requireRowChanged turns a zero-row write into ErrUserNotFound.
func requireRowChanged(res sql.Result, op, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %q: rows affected: %w", op, id, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
