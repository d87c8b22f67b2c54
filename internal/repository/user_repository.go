package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"makemeshort/internal/entities"

	"github.com/lib/pq"
)

// UserUpdate carries a partial edit: nil fields are left untouched. Roles,
// when present, replace the stored list wholesale.
type UserUpdate struct {
	Username     *string
	FullName     *string
	PasswordHash *string
	Roles        *[]string
	IsActive     *bool
}

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(username string, email, fullName *string, passwordHash string, roles []string) (*entities.User, error)
	FindByUsername(username string) (*entities.User, error)
	FindByID(id string) (*entities.User, error)
	Count() (int64, error)
	ListExcept(userID string) ([]*entities.User, error)
	Update(id string, upd UserUpdate) (*entities.User, error)
	Delete(id string) error
	TouchLastLogin(id string) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = "id, username, email, full_name, password_hash, roles, created_at, updated_at, last_login, is_active"

func scanUser(row interface{ Scan(...interface{}) error }) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		pq.Array(&user.Roles),
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLogin,
		&user.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user
func (r *userRepository) Create(username string, email, fullName *string, passwordHash string, roles []string) (*entities.User, error) {
	query := `
		INSERT INTO users (username, email, full_name, password_hash, roles)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(query, username, email, fullName, passwordHash, pq.Array(roles)))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// FindByUsername finds a user by username
func (r *userRepository) FindByUsername(username string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRow(query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindByID finds a user by ID (UUID)
func (r *userRepository) FindByID(id string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Count returns the total number of users
func (r *userRepository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// ListExcept returns all users except the given one, newest first
func (r *userRepository) ListExcept(userID string) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id <> $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// Update applies a partial edit and returns the updated user
func (r *userRepository) Update(id string, upd UserUpdate) (*entities.User, error) {
	query := `UPDATE users SET updated_at = now()`
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		query += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	if upd.Username != nil {
		addSet("username", *upd.Username)
	}
	if upd.FullName != nil {
		addSet("full_name", *upd.FullName)
	}
	if upd.PasswordHash != nil {
		addSet("password_hash", *upd.PasswordHash)
	}
	if upd.Roles != nil {
		addSet("roles", pq.Array(*upd.Roles))
	}
	if upd.IsActive != nil {
		addSet("is_active", *upd.IsActive)
	}

	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", len(args), userColumns)

	user, err := scanUser(r.db.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes a user by ID
func (r *userRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastLogin stamps last_login with the current time
func (r *userRepository) TouchLastLogin(id string) error {
	_, err := r.db.Exec(`UPDATE users SET last_login = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
