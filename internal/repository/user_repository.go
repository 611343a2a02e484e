package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/intl-tools/translator-service/internal/domain/model"
)

// UserFilter narrows List results. Nil fields match everything.
type UserFilter struct {
	Username *string
	Email    *string
}

// UserRepositoryInterface defines the interface for user repository operations.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, filter UserFilter) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository implements UserRepositoryInterface using SQLite.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, role, email, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Role, user.Email, user.Username, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt)
	return mapError(err)
}

// FindByID finds a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// List returns undeleted users matching the filter, ordered by username.
func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]model.User, error) {
	query := `SELECT * FROM users WHERE deleted_at IS NULL`
	args := []interface{}{}
	if filter.Username != nil {
		query += ` AND username = ?`
		args = append(args, *filter.Username)
	}
	if filter.Email != nil {
		query += ` AND email = ?`
		args = append(args, *filter.Email)
	}
	query += ` ORDER BY username`

	users := []model.User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

// Update replaces the mutable fields of a user.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET role = ?, email = ?, username = ?, password_hash = ?, updated_at = ?
		WHERE id = ?`,
		user.Role, user.Email, user.Username, user.PasswordHash,
		user.UpdatedAt, user.ID)
	return mapError(err)
}

// Delete soft-deletes a user.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
