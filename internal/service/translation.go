package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/intl-tools/translator-service/internal/domain/dto"
	"github.com/intl-tools/translator-service/internal/domain/model"
	"github.com/intl-tools/translator-service/internal/repository"
)

// TranslationService is the versioned translation engine: it creates,
// revises, queries and deletes translations and manages open translation
// requests.
type TranslationService interface {
	Translate(ctx context.Context, actor *model.User, req dto.TranslateRequest) (*model.Translation, error)
	UpdateTranslation(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateTranslationRequest) (*model.Translation, error)
	DeleteTranslation(ctx context.Context, actor *model.User, id uuid.UUID) error
	TranslationsForKey(ctx context.Context, keyID uuid.UUID) ([]model.Translation, error)
	TranslationHistory(ctx context.Context, keyID, languageID uuid.UUID) ([]model.Translation, error)
	TranslationsWithKeys(ctx context.Context, languageID uuid.UUID) ([]model.TranslationWithKey, error)

	CreateRequest(ctx context.Context, actor *model.User, req dto.CreateTranslationRequestRequest) (*model.TranslationRequest, error)
	UpdateRequest(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateTranslationRequestRequest) (*model.TranslationRequest, error)
	ListRequests(ctx context.Context, filter repository.TranslationRequestFilter) ([]model.TranslationRequest, error)
	AcceptRequest(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Translation, error)
	DiscardRequest(ctx context.Context, actor *model.User, id uuid.UUID) error
}

// TranslationServiceImpl implements TranslationService.
type TranslationServiceImpl struct {
	translationRepo repository.TranslationRepositoryInterface
	requestRepo     repository.TranslationRequestRepositoryInterface
	keyRepo         repository.KeyRepositoryInterface
	languageRepo    repository.LanguageRepositoryInterface
}

// NewTranslationService creates a new translation service.
func NewTranslationService(
	translationRepo repository.TranslationRepositoryInterface,
	requestRepo repository.TranslationRequestRepositoryInterface,
	keyRepo repository.KeyRepositoryInterface,
	languageRepo repository.LanguageRepositoryInterface,
) *TranslationServiceImpl {
	return &TranslationServiceImpl{
		translationRepo: translationRepo,
		requestRepo:     requestRepo,
		keyRepo:         keyRepo,
		languageRepo:    languageRepo,
	}
}

// checkPair verifies the key is live and the language exists.
func (s *TranslationServiceImpl) checkPair(ctx context.Context, keyID, languageID uuid.UUID) error {
	key, err := s.keyRepo.FindByID(ctx, keyID)
	if err != nil {
		return err
	}
	if key.DeletedAt != nil {
		return repository.ErrNotFound
	}
	_, err = s.languageRepo.FindByID(ctx, languageID)
	return err
}

// Translate writes a translation for a (key, language) pair. The first
// write of a pair creates version 1; a differing value appends the next
// version; an identical value returns the current row unchanged.
func (s *TranslationServiceImpl) Translate(ctx context.Context, actor *model.User, req dto.TranslateRequest) (*model.Translation, error) {
	if actor != nil && !actor.Role.CanTranslate() {
		return nil, ErrForbidden
	}
	if err := s.checkPair(ctx, req.KeyID, req.LanguageID); err != nil {
		return nil, err
	}

	t := &model.Translation{
		Translation: req.Translation,
		Comment:     req.Comment,
		LanguageID:  req.LanguageID,
		KeyID:       req.KeyID,
	}
	if actor != nil {
		t.CreatorID = actor.ID
		t.ApproverID = actor.ID
	}
	result, _, err := s.translationRepo.CreateVersion(ctx, t)
	return result, err
}

// UpdateTranslation revises the translation chain the row belongs to.
// Historical rows are never mutated; this is a fresh Translate on the same
// (key, language) pair.
func (s *TranslationServiceImpl) UpdateTranslation(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateTranslationRequest) (*model.Translation, error) {
	existing, err := s.translationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Translate(ctx, actor, dto.TranslateRequest{
		LanguageID:  existing.LanguageID,
		KeyID:       existing.KeyID,
		Translation: req.Translation,
		Comment:     req.Comment,
	})
}

// DeleteTranslation soft-deletes a translation row. The next Translate for
// the pair continues the version sequence past the deleted rows.
func (s *TranslationServiceImpl) DeleteTranslation(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if actor != nil && !actor.Role.CanTranslate() {
		return ErrForbidden
	}
	return s.translationRepo.Delete(ctx, id)
}

// TranslationsForKey returns the current translation per language for a key.
func (s *TranslationServiceImpl) TranslationsForKey(ctx context.Context, keyID uuid.UUID) ([]model.Translation, error) {
	if _, err := s.keyRepo.FindByID(ctx, keyID); err != nil {
		return nil, err
	}
	return s.translationRepo.CurrentForKey(ctx, keyID)
}

// TranslationHistory returns every version recorded for a (key, language)
// pair, deleted ones included, so revisions stay auditable.
func (s *TranslationServiceImpl) TranslationHistory(ctx context.Context, keyID, languageID uuid.UUID) ([]model.Translation, error) {
	if _, err := s.keyRepo.FindByID(ctx, keyID); err != nil {
		return nil, err
	}
	if _, err := s.languageRepo.FindByID(ctx, languageID); err != nil {
		return nil, err
	}
	return s.translationRepo.ListForPair(ctx, keyID, languageID)
}

// TranslationsWithKeys returns the current translation of every live key in
// the given language, joined with the key rows.
func (s *TranslationServiceImpl) TranslationsWithKeys(ctx context.Context, languageID uuid.UUID) ([]model.TranslationWithKey, error) {
	if _, err := s.languageRepo.FindByID(ctx, languageID); err != nil {
		return nil, err
	}
	return s.translationRepo.CurrentWithKeysForLanguage(ctx, languageID)
}

// CreateRequest files a translation proposal for review. Any authenticated
// user but viewers may propose.
func (s *TranslationServiceImpl) CreateRequest(ctx context.Context, actor *model.User, req dto.CreateTranslationRequestRequest) (*model.TranslationRequest, error) {
	if actor != nil && actor.Role == model.RoleViewer {
		return nil, ErrForbidden
	}
	if err := s.checkPair(ctx, req.KeyID, req.LanguageID); err != nil {
		return nil, err
	}

	proposal := &model.TranslationRequest{
		Translation: req.Translation,
		Comment:     req.Comment,
		LanguageID:  req.LanguageID,
		KeyID:       req.KeyID,
	}
	if actor != nil {
		proposal.CreatorID = actor.ID
	}
	if err := s.requestRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

// UpdateRequest mutates a pending proposal in place. Only the creator or a
// reviewer may touch it.
func (s *TranslationServiceImpl) UpdateRequest(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateTranslationRequestRequest) (*model.TranslationRequest, error) {
	proposal, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor != nil && !actor.Role.CanReview() && actor.ID != proposal.CreatorID {
		return nil, ErrForbidden
	}
	if req.Translation != nil {
		proposal.Translation = *req.Translation
	}
	if req.Comment != nil {
		proposal.Comment = req.Comment
	}
	if err := s.requestRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

// ListRequests returns open proposals matching the filter.
func (s *TranslationServiceImpl) ListRequests(ctx context.Context, filter repository.TranslationRequestFilter) ([]model.TranslationRequest, error) {
	return s.requestRepo.List(ctx, filter)
}

// AcceptRequest promotes a proposal into a translation version and removes
// the proposal. Reviewer or admin.
func (s *TranslationServiceImpl) AcceptRequest(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Translation, error) {
	if actor != nil && !actor.Role.CanReview() {
		return nil, ErrForbidden
	}
	proposal, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t := &model.Translation{
		Translation: proposal.Translation,
		Comment:     proposal.Comment,
		LanguageID:  proposal.LanguageID,
		KeyID:       proposal.KeyID,
		CreatorID:   proposal.CreatorID,
	}
	if actor != nil {
		t.ApproverID = actor.ID
	}
	result, _, err := s.translationRepo.CreateVersion(ctx, t)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return result, nil
}

// DiscardRequest drops a proposal without promoting it.
func (s *TranslationServiceImpl) DiscardRequest(ctx context.Context, actor *model.User, id uuid.UUID) error {
	proposal, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actor != nil && !actor.Role.CanReview() && actor.ID != proposal.CreatorID {
		return ErrForbidden
	}
	return s.requestRepo.Delete(ctx, id)
}
