package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intl-tools/translator-service/internal/domain/dto"
	"github.com/intl-tools/translator-service/internal/domain/model"
	"github.com/intl-tools/translator-service/internal/repository"
)

func TestCreateKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, k := range []string{"menu", "dialog.ok", "dialog.cancel"} {
		env.newKey(t, k)
	}

	t.Run("rejects key nested under a leaf", func(t *testing.T) {
		_, err := env.catalog.CreateKey(ctx, env.admin, dto.CreateKeyRequest{Key: "menu.file"})
		assert.ErrorIs(t, err, ErrShadowsLeaf)
	})

	t.Run("rejects key occupying a namespace", func(t *testing.T) {
		_, err := env.catalog.CreateKey(ctx, env.admin, dto.CreateKeyRequest{Key: "dialog"})
		assert.ErrorIs(t, err, ErrShadowsNamespace)
	})

	t.Run("rejects duplicate key", func(t *testing.T) {
		_, err := env.catalog.CreateKey(ctx, env.admin, dto.CreateKeyRequest{Key: "menu"})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("rejects malformed key", func(t *testing.T) {
		_, err := env.catalog.CreateKey(ctx, env.admin, dto.CreateKeyRequest{Key: "Footer.Copy"})
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("accepts fresh key", func(t *testing.T) {
		key, err := env.catalog.CreateKey(ctx, env.admin, dto.CreateKeyRequest{Key: "footer.copyright"})
		require.NoError(t, err)
		assert.Equal(t, "footer.copyright", key.Key)
		assert.Equal(t, env.admin.ID, key.CreatorID)
	})

	t.Run("forbidden for viewers", func(t *testing.T) {
		viewer := env.newUser(t, "viewer", model.RoleViewer)
		_, err := env.catalog.CreateKey(ctx, viewer, dto.CreateKeyRequest{Key: "free.slot"})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestUpdateKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	key := env.newKey(t, "home.title")
	env.newKey(t, "home.subtitle")

	t.Run("rename to current name is a no-op", func(t *testing.T) {
		same := "home.title"
		updated, err := env.catalog.UpdateKey(ctx, env.admin, key.ID, dto.UpdateKeyRequest{Key: &same})
		require.NoError(t, err)
		assert.Equal(t, "home.title", updated.Key)
	})

	t.Run("rename to occupied name conflicts", func(t *testing.T) {
		taken := "home.subtitle"
		_, err := env.catalog.UpdateKey(ctx, env.admin, key.ID, dto.UpdateKeyRequest{Key: &taken})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("rename keeps id and history", func(t *testing.T) {
		lang := env.newLanguage(t, "en", "English")
		_, err := env.translations.Translate(ctx, env.admin, dto.TranslateRequest{
			LanguageID:  lang.ID,
			KeyID:       key.ID,
			Translation: "Home",
		})
		require.NoError(t, err)

		renamed := "home.heading"
		updated, err := env.catalog.UpdateKey(ctx, env.admin, key.ID, dto.UpdateKeyRequest{Key: &renamed})
		require.NoError(t, err)
		assert.Equal(t, key.ID, updated.ID)

		current, err := env.translations.TranslationsForKey(ctx, key.ID)
		require.NoError(t, err)
		require.Len(t, current, 1)
		assert.Equal(t, "Home", current[0].Translation)
	})

	t.Run("description update", func(t *testing.T) {
		desc := "page heading"
		updated, err := env.catalog.UpdateKey(ctx, env.admin, key.ID, dto.UpdateKeyRequest{Description: &desc})
		require.NoError(t, err)
		require.NotNil(t, updated.Description)
		assert.Equal(t, desc, *updated.Description)
	})
}

func TestLanguages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("create and find by code", func(t *testing.T) {
		created := env.newLanguage(t, "de", "German")

		found, err := env.catalog.LanguageByCode(ctx, "de")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		env.newLanguage(t, "fr", "French")
		_, err := env.catalog.CreateLanguage(ctx, env.admin, dto.CreateLanguageRequest{Code: "fr", Name: "Francais"})
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		lang := env.newLanguage(t, "es", "Spanish")

		desc := "Castilian Spanish"
		updated, err := env.catalog.UpdateLanguage(ctx, env.admin, lang.ID, dto.UpdateLanguageRequest{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "Spanish", updated.Name)
		require.NotNil(t, updated.Description)
		assert.Equal(t, desc, *updated.Description)
	})

	t.Run("dialect points at parent", func(t *testing.T) {
		parent := env.newLanguage(t, "pt", "Portuguese")
		dialect, err := env.catalog.CreateLanguage(ctx, env.admin, dto.CreateLanguageRequest{
			Code:     "pt-BR",
			Name:     "Brazilian Portuguese",
			ParentID: &parent.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, dialect.ParentID)
		assert.Equal(t, parent.ID, *dialect.ParentID)
	})

	t.Run("delete refuses languages with translations", func(t *testing.T) {
		lang := env.newLanguage(t, "it", "Italian")
		key := env.newKey(t, "greeting")
		_, err := env.translations.Translate(ctx, env.admin, dto.TranslateRequest{
			LanguageID:  lang.ID,
			KeyID:       key.ID,
			Translation: "Ciao",
		})
		require.NoError(t, err)

		err = env.catalog.DeleteLanguage(ctx, env.admin, lang.ID)
		assert.ErrorIs(t, err, repository.ErrIntegrity)
	})

	t.Run("delete removes empty languages", func(t *testing.T) {
		lang := env.newLanguage(t, "nl", "Dutch")
		require.NoError(t, env.catalog.DeleteLanguage(ctx, env.admin, lang.ID))

		_, err := env.catalog.Language(ctx, lang.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete is admin only", func(t *testing.T) {
		reviewer := env.newUser(t, "rev", model.RoleReviewer)
		lang := env.newLanguage(t, "sv", "Swedish")

		err := env.catalog.DeleteLanguage(ctx, reviewer, lang.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}
