package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/intl-tools/translator-service/internal/domain/model"
)

// versionRetries bounds how often an insert is retried when two writers race
// for the same (key, language, version) slot.
const versionRetries = 3

// TranslationRepositoryInterface defines the interface for translation repository operations.
type TranslationRepositoryInterface interface {
	CreateVersion(ctx context.Context, t *model.Translation) (*model.Translation, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Translation, error)
	LatestForPair(ctx context.Context, keyID, languageID uuid.UUID) (*model.Translation, error)
	ListForPair(ctx context.Context, keyID, languageID uuid.UUID) ([]model.Translation, error)
	CurrentForKey(ctx context.Context, keyID uuid.UUID) ([]model.Translation, error)
	CurrentWithKeysForLanguage(ctx context.Context, languageID uuid.UUID) ([]model.TranslationWithKey, error)
	ListAll(ctx context.Context) ([]model.Translation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TranslationRepository implements TranslationRepositoryInterface using SQLite.
type TranslationRepository struct {
	db *sqlx.DB
}

// NewTranslationRepository creates a new translation repository.
func NewTranslationRepository(db *sqlx.DB) *TranslationRepository {
	return &TranslationRepository{db: db}
}

// CreateVersion appends the next version for the translation's (key,
// language) pair. The find-latest and insert run in one transaction; the
// unique (key_id, language_id, version) index catches concurrent writers and
// the whole transaction is retried.
//
// When the current live translation already carries the same value, no row
// is written and the existing one is returned. The bool result reports
// whether a new version was created.
func (r *TranslationRepository) CreateVersion(ctx context.Context, t *model.Translation) (*model.Translation, bool, error) {
	var lastErr error
	for attempt := 0; attempt < versionRetries; attempt++ {
		result, created, err := r.tryCreateVersion(ctx, t)
		if err == nil {
			return result, created, nil
		}
		if !IsUniqueViolation(err) {
			return nil, false, err
		}
		lastErr = err
	}
	return nil, false, lastErr
}

func (r *TranslationRepository) tryCreateVersion(ctx context.Context, t *model.Translation) (*model.Translation, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, mapError(err)
	}
	defer func() { _ = tx.Rollback() }()

	latest, err := latestForPairTx(ctx, tx, t.KeyID, t.LanguageID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}
	if latest != nil && latest.Translation == t.Translation {
		return latest, false, nil
	}

	// Versions stay monotonic across soft-deletes, so the next version is
	// computed over all rows of the pair, deleted or not.
	var maxVersion int
	err = tx.GetContext(ctx, &maxVersion, `
		SELECT COALESCE(MAX(version), 0) FROM translations
		WHERE key_id = ? AND language_id = ?`,
		t.KeyID, t.LanguageID)
	if err != nil {
		return nil, false, mapError(err)
	}

	next := *t
	if next.ID == uuid.Nil {
		next.ID = uuid.New()
	}
	next.Version = maxVersion + 1
	next.CreatedAt = time.Now().UTC()
	next.DeletedAt = nil

	_, err = tx.ExecContext(ctx, `
		INSERT INTO translations
			(id, version, translation, comment, language_id, key_id, creator_id, approver_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		next.ID, next.Version, next.Translation, next.Comment,
		next.LanguageID, next.KeyID, next.CreatorID, next.ApproverID, next.CreatedAt)
	if err != nil {
		return nil, false, mapError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, mapError(err)
	}
	return &next, true, nil
}

// FindByID finds a translation by id.
func (r *TranslationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Translation, error) {
	var t model.Translation
	err := r.db.GetContext(ctx, &t, `SELECT * FROM translations WHERE id = ?`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

// LatestForPair returns the current translation of a (key, language) pair.
func (r *TranslationRepository) LatestForPair(ctx context.Context, keyID, languageID uuid.UUID) (*model.Translation, error) {
	return latestForPair(ctx, r.db, keyID, languageID)
}

type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func latestForPair(ctx context.Context, q queryer, keyID, languageID uuid.UUID) (*model.Translation, error) {
	var t model.Translation
	// The unique pair/version index makes equal versions impossible; the
	// created_at and id ordering is a defensive tie-break.
	err := q.GetContext(ctx, &t, `
		SELECT * FROM translations
		WHERE key_id = ? AND language_id = ? AND deleted_at IS NULL
		ORDER BY version DESC, created_at DESC, id DESC
		LIMIT 1`,
		keyID, languageID)
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func latestForPairTx(ctx context.Context, tx *sqlx.Tx, keyID, languageID uuid.UUID) (*model.Translation, error) {
	return latestForPair(ctx, tx, keyID, languageID)
}

// ListForPair returns the full version history of a (key, language) pair,
// soft-deleted rows included, oldest version first.
func (r *TranslationRepository) ListForPair(ctx context.Context, keyID, languageID uuid.UUID) ([]model.Translation, error) {
	ts := []model.Translation{}
	err := r.db.SelectContext(ctx, &ts, `
		SELECT * FROM translations
		WHERE key_id = ? AND language_id = ?
		ORDER BY version`,
		keyID, languageID)
	if err != nil {
		return nil, mapError(err)
	}
	return ts, nil
}

// CurrentForKey returns the current translation per language for a key.
func (r *TranslationRepository) CurrentForKey(ctx context.Context, keyID uuid.UUID) ([]model.Translation, error) {
	ts := []model.Translation{}
	err := r.db.SelectContext(ctx, &ts, `
		SELECT t.* FROM translations t
		JOIN (
			SELECT language_id, MAX(version) AS version
			FROM translations
			WHERE key_id = ? AND deleted_at IS NULL
			GROUP BY language_id
		) m ON t.language_id = m.language_id AND t.version = m.version
		WHERE t.key_id = ? AND t.deleted_at IS NULL`,
		keyID, keyID)
	if err != nil {
		return nil, mapError(err)
	}
	return ts, nil
}

// CurrentWithKeysForLanguage joins the current translation of every live key
// in the given language with its key row. Pairs without a translation are
// omitted. Both reads run in one transaction so exports see one snapshot.
func (r *TranslationRepository) CurrentWithKeysForLanguage(ctx context.Context, languageID uuid.UUID) ([]model.TranslationWithKey, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = tx.Rollback() }()

	keys := []model.Key{}
	err = tx.SelectContext(ctx, &keys,
		`SELECT * FROM keys WHERE deleted_at IS NULL`)
	if err != nil {
		return nil, mapError(err)
	}

	ts := []model.Translation{}
	err = tx.SelectContext(ctx, &ts, `
		SELECT t.* FROM translations t
		JOIN (
			SELECT key_id, MAX(version) AS version
			FROM translations
			WHERE language_id = ? AND deleted_at IS NULL
			GROUP BY key_id
		) m ON t.key_id = m.key_id AND t.version = m.version
		WHERE t.language_id = ? AND t.deleted_at IS NULL`,
		languageID, languageID)
	if err != nil {
		return nil, mapError(err)
	}

	byKeyID := make(map[uuid.UUID]model.Key, len(keys))
	for _, k := range keys {
		byKeyID[k.ID] = k
	}

	joined := make([]model.TranslationWithKey, 0, len(ts))
	for _, t := range ts {
		key, ok := byKeyID[t.KeyID]
		if !ok {
			// Translation of a deleted key; not part of the bundle.
			continue
		}
		joined = append(joined, model.TranslationWithKey{Translation: t, Key: key})
	}
	sort.Slice(joined, func(i, j int) bool {
		return joined[i].Key.Key < joined[j].Key.Key
	})
	return joined, nil
}

// ListAll returns every live translation row. Used by the full dump export.
func (r *TranslationRepository) ListAll(ctx context.Context) ([]model.Translation, error) {
	ts := []model.Translation{}
	err := r.db.SelectContext(ctx, &ts, `
		SELECT * FROM translations WHERE deleted_at IS NULL
		ORDER BY key_id, language_id, version`)
	if err != nil {
		return nil, mapError(err)
	}
	return ts, nil
}

// Delete soft-deletes a translation row.
func (r *TranslationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE translations SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC(), id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
