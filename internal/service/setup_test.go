package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/intl-tools/translator-service/internal/domain/dto"
	"github.com/intl-tools/translator-service/internal/domain/model"
	"github.com/intl-tools/translator-service/internal/repository"
	"github.com/intl-tools/translator-service/internal/testutil"
)

// testEnv wires the full service stack over a fresh embedded store.
type testEnv struct {
	identity     *IdentityServiceImpl
	catalog      *CatalogServiceImpl
	translations *TranslationServiceImpl
	exports      *ExportServiceImpl

	admin *model.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.OpenTestStore(t)

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	languageRepo := repository.NewLanguageRepository(db)
	keyRepo := repository.NewKeyRepository(db)
	translationRepo := repository.NewTranslationRepository(db)
	requestRepo := repository.NewTranslationRequestRepository(db)

	env := &testEnv{
		identity:     NewIdentityService(userRepo, tokenRepo),
		catalog:      NewCatalogService(languageRepo, keyRepo),
		translations: NewTranslationService(translationRepo, requestRepo, keyRepo, languageRepo),
		exports:      NewExportService(translationRepo, keyRepo, languageRepo, userRepo),
	}

	admin, err := env.identity.EnsureAdminUser(context.Background(), "hunter2")
	require.NoError(t, err)
	env.admin = admin
	return env
}

// newUser creates a user with the given role and returns it.
func (e *testEnv) newUser(t *testing.T, username string, role model.Role) *model.User {
	t.Helper()

	user, err := e.identity.CreateUser(context.Background(), e.admin, dto.CreateUserRequest{
		Role:     string(role),
		Email:    username + "@example.com",
		Username: username,
		Password: "password-" + username,
	})
	require.NoError(t, err)
	return user
}

// newLanguage creates a language and returns it.
func (e *testEnv) newLanguage(t *testing.T, code, name string) *model.Language {
	t.Helper()

	lang, err := e.catalog.CreateLanguage(context.Background(), e.admin, dto.CreateLanguageRequest{
		Code: code,
		Name: name,
	})
	require.NoError(t, err)
	return lang
}

// newKey creates a key and returns it.
func (e *testEnv) newKey(t *testing.T, key string) *model.Key {
	t.Helper()

	k, err := e.catalog.CreateKey(context.Background(), e.admin, dto.CreateKeyRequest{Key: key})
	require.NoError(t, err)
	return k
}
