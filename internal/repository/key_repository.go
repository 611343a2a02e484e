package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/intl-tools/translator-service/internal/domain/model"
)

// KeyRepositoryInterface defines the interface for key repository operations.
type KeyRepositoryInterface interface {
	Create(ctx context.Context, key *model.Key) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Key, error)
	FindByKey(ctx context.Context, key string) (*model.Key, error)
	ListLive(ctx context.Context) ([]model.Key, error)
	Update(ctx context.Context, key *model.Key) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// KeyRepository implements KeyRepositoryInterface using SQLite.
type KeyRepository struct {
	db *sqlx.DB
}

// NewKeyRepository creates a new key repository.
func NewKeyRepository(db *sqlx.DB) *KeyRepository {
	return &KeyRepository{db: db}
}

// Create inserts a new key.
func (r *KeyRepository) Create(ctx context.Context, key *model.Key) error {
	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}
	now := time.Now().UTC()
	key.CreatedAt = now
	key.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO keys (id, key, description, creator_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		key.ID, key.Key, key.Description, key.CreatorID, key.CreatedAt, key.UpdatedAt)
	return mapError(err)
}

// FindByID finds a key by id.
func (r *KeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Key, error) {
	var key model.Key
	err := r.db.GetContext(ctx, &key, `SELECT * FROM keys WHERE id = ?`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &key, nil
}

// FindByKey finds a live key by its dotted path.
func (r *KeyRepository) FindByKey(ctx context.Context, keyString string) (*model.Key, error) {
	var key model.Key
	err := r.db.GetContext(ctx, &key,
		`SELECT * FROM keys WHERE key = ? AND deleted_at IS NULL`, keyString)
	if err != nil {
		return nil, mapError(err)
	}
	return &key, nil
}

// ListLive returns all undeleted keys ordered by key string.
func (r *KeyRepository) ListLive(ctx context.Context) ([]model.Key, error) {
	keys := []model.Key{}
	err := r.db.SelectContext(ctx, &keys,
		`SELECT * FROM keys WHERE deleted_at IS NULL ORDER BY key`)
	if err != nil {
		return nil, mapError(err)
	}
	return keys, nil
}

// Update replaces the mutable fields of a key. Renames keep the id so
// translation history stays attached.
func (r *KeyRepository) Update(ctx context.Context, key *model.Key) error {
	key.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		UPDATE keys SET key = ?, description = ?, updated_at = ? WHERE id = ?`,
		key.Key, key.Description, key.UpdatedAt, key.ID)
	return mapError(err)
}

// Delete soft-deletes a key.
func (r *KeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE keys SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
