package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/intl-tools/translator-service/internal/domain/model"
)

// TranslationRequestFilter narrows List results. Nil fields match everything.
type TranslationRequestFilter struct {
	KeyID      *uuid.UUID
	LanguageID *uuid.UUID
}

// TranslationRequestRepositoryInterface defines the interface for translation request repository operations.
type TranslationRequestRepositoryInterface interface {
	Create(ctx context.Context, req *model.TranslationRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TranslationRequest, error)
	List(ctx context.Context, filter TranslationRequestFilter) ([]model.TranslationRequest, error)
	Update(ctx context.Context, req *model.TranslationRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TranslationRequestRepository implements TranslationRequestRepositoryInterface using SQLite.
type TranslationRequestRepository struct {
	db *sqlx.DB
}

// NewTranslationRequestRepository creates a new translation request repository.
func NewTranslationRequestRepository(db *sqlx.DB) *TranslationRequestRepository {
	return &TranslationRequestRepository{db: db}
}

// Create inserts a new proposal.
func (r *TranslationRequestRepository) Create(ctx context.Context, req *model.TranslationRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO translation_requests
			(id, translation, comment, language_id, key_id, creator_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.Translation, req.Comment, req.LanguageID, req.KeyID,
		req.CreatorID, req.CreatedAt, req.UpdatedAt)
	return mapError(err)
}

// FindByID finds a proposal by id.
func (r *TranslationRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TranslationRequest, error) {
	var req model.TranslationRequest
	err := r.db.GetContext(ctx, &req, `SELECT * FROM translation_requests WHERE id = ?`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &req, nil
}

// List returns proposals matching the filter, oldest first.
func (r *TranslationRequestRepository) List(ctx context.Context, filter TranslationRequestFilter) ([]model.TranslationRequest, error) {
	query := `SELECT * FROM translation_requests WHERE 1 = 1`
	args := []interface{}{}
	if filter.KeyID != nil {
		query += ` AND key_id = ?`
		args = append(args, *filter.KeyID)
	}
	if filter.LanguageID != nil {
		query += ` AND language_id = ?`
		args = append(args, *filter.LanguageID)
	}
	query += ` ORDER BY created_at, id`

	reqs := []model.TranslationRequest{}
	if err := r.db.SelectContext(ctx, &reqs, query, args...); err != nil {
		return nil, mapError(err)
	}
	return reqs, nil
}

// Update mutates a proposal in place.
func (r *TranslationRequestRepository) Update(ctx context.Context, req *model.TranslationRequest) error {
	req.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		UPDATE translation_requests SET translation = ?, comment = ?, updated_at = ?
		WHERE id = ?`,
		req.Translation, req.Comment, req.UpdatedAt, req.ID)
	return mapError(err)
}

// Delete discards a proposal.
func (r *TranslationRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM translation_requests WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
