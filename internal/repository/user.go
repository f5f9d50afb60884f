package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/timetrack/timetrack-go/internal/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (user_name, password, email) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.UserName, user.Password, user.Email)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateUsername
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, user_name, password, email, created_at, updated_at FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a user by their username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, user_name, password, email, created_at, updated_at FROM users WHERE user_name = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

// List retrieves all users in store-native order.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, user_name, password, email, created_at, updated_at FROM users`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.UserName, &u.Password, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// Update overwrites the stored user_name, password and email for the
// given user. Partial-field merging happens in the service layer; the
// repository always writes the full row.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET user_name = ?, password = ?, email = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, user.UserName, user.Password, user.Email, user.ID)
	if err != nil && isDuplicateEntryError(err) {
		return ErrDuplicateUsername
	}
	return err
}

// Delete removes a user by ID. The caller must have removed the user's
// tasks first to satisfy the foreign key constraint.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.UserName, &user.Password, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
