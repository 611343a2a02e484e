package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/intl-tools/translator-service/internal/domain/dto"
	"github.com/intl-tools/translator-service/internal/domain/model"
	"github.com/intl-tools/translator-service/internal/repository"
)

// CatalogService owns languages, keys, key validation and the key tree.
type CatalogService interface {
	Languages(ctx context.Context) ([]model.Language, error)
	Language(ctx context.Context, id uuid.UUID) (*model.Language, error)
	LanguageByCode(ctx context.Context, code string) (*model.Language, error)
	CreateLanguage(ctx context.Context, actor *model.User, req dto.CreateLanguageRequest) (*model.Language, error)
	UpdateLanguage(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateLanguageRequest) (*model.Language, error)
	DeleteLanguage(ctx context.Context, actor *model.User, id uuid.UUID) error

	Keys(ctx context.Context) ([]model.Key, error)
	Key(ctx context.Context, id uuid.UUID) (*model.Key, error)
	CreateKey(ctx context.Context, actor *model.User, req dto.CreateKeyRequest) (*model.Key, error)
	UpdateKey(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateKeyRequest) (*model.Key, error)
	DeleteKey(ctx context.Context, actor *model.User, id uuid.UUID) error

	BuildTree(ctx context.Context) (*KeyTree, error)
}

// CatalogServiceImpl implements CatalogService.
type CatalogServiceImpl struct {
	languageRepo repository.LanguageRepositoryInterface
	keyRepo      repository.KeyRepositoryInterface
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	languageRepo repository.LanguageRepositoryInterface,
	keyRepo repository.KeyRepositoryInterface,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		languageRepo: languageRepo,
		keyRepo:      keyRepo,
	}
}

// Languages lists all languages.
func (s *CatalogServiceImpl) Languages(ctx context.Context) ([]model.Language, error) {
	return s.languageRepo.List(ctx)
}

// Language finds a language by id.
func (s *CatalogServiceImpl) Language(ctx context.Context, id uuid.UUID) (*model.Language, error) {
	return s.languageRepo.FindByID(ctx, id)
}

// LanguageByCode finds a language by its code.
func (s *CatalogServiceImpl) LanguageByCode(ctx context.Context, code string) (*model.Language, error) {
	return s.languageRepo.FindByCode(ctx, code)
}

// CreateLanguage adds a new language. Reviewer or admin.
func (s *CatalogServiceImpl) CreateLanguage(ctx context.Context, actor *model.User, req dto.CreateLanguageRequest) (*model.Language, error) {
	if actor != nil && !actor.Role.CanReview() {
		return nil, ErrForbidden
	}
	lang := &model.Language{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	}
	if err := s.languageRepo.Create(ctx, lang); err != nil {
		return nil, err
	}
	return lang, nil
}

// UpdateLanguage applies a partial update; omitted fields keep prior values.
func (s *CatalogServiceImpl) UpdateLanguage(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateLanguageRequest) (*model.Language, error) {
	if actor != nil && !actor.Role.CanReview() {
		return nil, ErrForbidden
	}
	lang, err := s.languageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		lang.Name = *req.Name
	}
	if req.Description != nil {
		lang.Description = req.Description
	}
	if req.ParentID != nil {
		lang.ParentID = req.ParentID
	}
	if err := s.languageRepo.Update(ctx, lang); err != nil {
		return nil, err
	}
	return lang, nil
}

// DeleteLanguage removes a language without translations. Admin only.
func (s *CatalogServiceImpl) DeleteLanguage(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if actor != nil && !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	return s.languageRepo.Delete(ctx, id)
}

// Keys lists all live keys.
func (s *CatalogServiceImpl) Keys(ctx context.Context) ([]model.Key, error) {
	return s.keyRepo.ListLive(ctx)
}

// Key finds a key by id.
func (s *CatalogServiceImpl) Key(ctx context.Context, id uuid.UUID) (*model.Key, error) {
	return s.keyRepo.FindByID(ctx, id)
}

// CreateKey validates the dotted path against the current key tree and
// inserts the key.
func (s *CatalogServiceImpl) CreateKey(ctx context.Context, actor *model.User, req dto.CreateKeyRequest) (*model.Key, error) {
	if actor != nil && !actor.Role.CanTranslate() {
		return nil, ErrForbidden
	}
	tree, err := s.BuildTree(ctx)
	if err != nil {
		return nil, err
	}
	if err := ValidateKey(req.Key, tree); err != nil {
		return nil, err
	}

	key := &model.Key{
		Key:         req.Key,
		Description: req.Description,
	}
	if actor != nil {
		key.CreatorID = actor.ID
	}
	if err := s.keyRepo.Create(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

// UpdateKey renames a key or updates its description. A rename runs the
// same validation as creation, against the tree without the key itself, so
// renaming a key to its current name is a no-op accept. The id and the
// attached translation history are preserved.
func (s *CatalogServiceImpl) UpdateKey(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateKeyRequest) (*model.Key, error) {
	if actor != nil && !actor.Role.CanTranslate() {
		return nil, ErrForbidden
	}
	key, err := s.keyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Key != nil && *req.Key != key.Key {
		keys, err := s.keyRepo.ListLive(ctx)
		if err != nil {
			return nil, err
		}
		tree := NewKeyTree()
		for _, k := range keys {
			if k.ID != key.ID {
				tree.Insert(k.Key)
			}
		}
		if err := ValidateKey(*req.Key, tree); err != nil {
			return nil, err
		}
		key.Key = *req.Key
	}
	if req.Description != nil {
		key.Description = req.Description
	}

	if err := s.keyRepo.Update(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

// DeleteKey soft-deletes a key. Reviewer or admin.
func (s *CatalogServiceImpl) DeleteKey(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if actor != nil && !actor.Role.CanReview() {
		return ErrForbidden
	}
	return s.keyRepo.Delete(ctx, id)
}

// BuildTree materializes the key tree from the live key set.
func (s *CatalogServiceImpl) BuildTree(ctx context.Context) (*KeyTree, error) {
	keys, err := s.keyRepo.ListLive(ctx)
	if err != nil {
		return nil, err
	}
	return BuildKeyTree(keys), nil
}
