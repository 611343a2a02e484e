package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/intl-tools/translator-service/internal/domain/model"
)

// LanguageRepositoryInterface defines the interface for language repository operations.
type LanguageRepositoryInterface interface {
	Create(ctx context.Context, lang *model.Language) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Language, error)
	FindByCode(ctx context.Context, code string) (*model.Language, error)
	List(ctx context.Context) ([]model.Language, error)
	Update(ctx context.Context, lang *model.Language) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LanguageRepository implements LanguageRepositoryInterface using SQLite.
type LanguageRepository struct {
	db *sqlx.DB
}

// NewLanguageRepository creates a new language repository.
func NewLanguageRepository(db *sqlx.DB) *LanguageRepository {
	return &LanguageRepository{db: db}
}

// Create inserts a new language.
func (r *LanguageRepository) Create(ctx context.Context, lang *model.Language) error {
	if lang.ID == uuid.Nil {
		lang.ID = uuid.New()
	}
	now := time.Now().UTC()
	lang.CreatedAt = now
	lang.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO languages (id, code, name, description, parent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		lang.ID, lang.Code, lang.Name, lang.Description, lang.ParentID,
		lang.CreatedAt, lang.UpdatedAt)
	return mapError(err)
}

// FindByID finds a language by id.
func (r *LanguageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Language, error) {
	var lang model.Language
	err := r.db.GetContext(ctx, &lang, `SELECT * FROM languages WHERE id = ?`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &lang, nil
}

// FindByCode finds a language by its code ("en", "de-AT").
func (r *LanguageRepository) FindByCode(ctx context.Context, code string) (*model.Language, error) {
	var lang model.Language
	err := r.db.GetContext(ctx, &lang, `SELECT * FROM languages WHERE code = ?`, code)
	if err != nil {
		return nil, mapError(err)
	}
	return &lang, nil
}

// List returns all languages ordered by code.
func (r *LanguageRepository) List(ctx context.Context) ([]model.Language, error) {
	langs := []model.Language{}
	err := r.db.SelectContext(ctx, &langs, `SELECT * FROM languages ORDER BY code`)
	if err != nil {
		return nil, mapError(err)
	}
	return langs, nil
}

// Update replaces the mutable fields of a language.
func (r *LanguageRepository) Update(ctx context.Context, lang *model.Language) error {
	lang.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		UPDATE languages
		SET code = ?, name = ?, description = ?, parent_id = ?, updated_at = ?
		WHERE id = ?`,
		lang.Code, lang.Name, lang.Description, lang.ParentID, lang.UpdatedAt, lang.ID)
	return mapError(err)
}

// Delete removes a language. Referencing translations make this fail with
// ErrIntegrity; cascades are deliberately not enabled.
func (r *LanguageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM translations WHERE language_id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	if n > 0 {
		return ErrIntegrity
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM languages WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
