package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/intl-tools/translator-service/internal/domain/model"
)

// TokenRepositoryInterface defines the interface for token repository operations.
type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.Token) error
	FindByToken(ctx context.Context, tokenString string) (*model.Token, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// TokenRepository implements TokenRepositoryInterface using SQLite.
type TokenRepository struct {
	db *sqlx.DB
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *sqlx.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create inserts a new token.
func (r *TokenRepository) Create(ctx context.Context, token *model.Token) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tokens (id, kind, token, valid_until, created_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		token.ID, token.Kind, token.Token, token.ValidUntil, token.CreatedAt, token.UserID)
	return mapError(err)
}

// FindByToken looks up a token by its opaque string value.
func (r *TokenRepository) FindByToken(ctx context.Context, tokenString string) (*model.Token, error) {
	var token model.Token
	err := r.db.GetContext(ctx, &token, `SELECT * FROM tokens WHERE token = ?`, tokenString)
	if err != nil {
		return nil, mapError(err)
	}
	return &token, nil
}

// Delete revokes a token. Revocation is a soft-delete so the row remains
// auditable.
func (r *TokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tokens SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC(), id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUserID revokes every live token of a user.
func (r *TokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tokens SET deleted_at = ? WHERE user_id = ? AND deleted_at IS NULL`,
		time.Now().UTC(), userID)
	return mapError(err)
}
