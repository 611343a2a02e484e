package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intl-tools/translator-service/internal/domain/dto"
)

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ExportFormat
		wantErr bool
	}{
		{in: "", want: FormatJSON},
		{in: "json", want: FormatJSON},
		{in: "javascript", want: FormatJavaScript},
		{in: "js", want: FormatJavaScript},
		{in: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("format "+tt.in, func(t *testing.T) {
			got, err := ParseExportFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportFormat_ContentType(t *testing.T) {
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "application/javascript", FormatJavaScript.ContentType())
}

// seedExportFixture loads the bundle used by the export scenarios.
func seedExportFixture(t *testing.T, env *testEnv) *testEnv {
	t.Helper()
	ctx := context.Background()

	lang := env.newLanguage(t, "en", "English")
	for key, value := range map[string]string{
		"app.title":       "MyApp",
		"app.footer.copy": "©",
		"home":            "Home",
	} {
		k := env.newKey(t, key)
		_, err := env.translations.Translate(ctx, env.admin, dto.TranslateRequest{
			LanguageID: lang.ID, KeyID: k.ID, Translation: value,
		})
		require.NoError(t, err)
	}
	return env
}

func TestTranslationsExport(t *testing.T) {
	env := seedExportFixture(t, newTestEnv(t))
	ctx := context.Background()

	lang, err := env.catalog.LanguageByCode(ctx, "en")
	require.NoError(t, err)

	t.Run("pretty JSON is deterministic byte for byte", func(t *testing.T) {
		data, err := env.exports.TranslationsExport(ctx, lang.ID, FormatJSON, true)
		require.NoError(t, err)

		want := "{\n" +
			"  \"app.footer.copy\": \"©\",\n" +
			"  \"app.title\": \"MyApp\",\n" +
			"  \"home\": \"Home\"\n" +
			"}"
		assert.Equal(t, want, string(data))
	})

	t.Run("compact JSON sorts members", func(t *testing.T) {
		data, err := env.exports.TranslationsExport(ctx, lang.ID, FormatJSON, false)
		require.NoError(t, err)
		assert.Equal(t, `{"app.footer.copy":"©","app.title":"MyApp","home":"Home"}`, string(data))
	})

	t.Run("javascript module wrapper", func(t *testing.T) {
		data, err := env.exports.TranslationsExport(ctx, lang.ID, FormatJavaScript, false)
		require.NoError(t, err)

		out := string(data)
		assert.True(t, strings.HasPrefix(out, "// This file was auto-generated. Do not edit by hand!\n\n/* tslint:disable */\n\n"))
		assert.Contains(t, out, `export const translations = {"app.footer.copy":"©","app.title":"MyApp","home":"Home"};`)
		assert.True(t, strings.HasSuffix(out, "export default translations;\n"))
	})

	t.Run("only current versions are exported", func(t *testing.T) {
		keys, err := env.catalog.Keys(ctx)
		require.NoError(t, err)
		for _, k := range keys {
			if k.Key != "home" {
				continue
			}
			_, err = env.translations.Translate(ctx, env.admin, dto.TranslateRequest{
				LanguageID: lang.ID, KeyID: k.ID, Translation: "Start",
			})
			require.NoError(t, err)
		}

		data, err := env.exports.TranslationsExport(ctx, lang.ID, FormatJSON, false)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"home":"Start"`)
		assert.NotContains(t, string(data), `"home":"Home"`)
	})
}

func TestKeysExport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, k := range []string{"a.b", "a.c", "d"} {
		env.newKey(t, k)
	}

	t.Run("json tree", func(t *testing.T) {
		data, err := env.exports.KeysExport(ctx, FormatJSON, false)
		require.NoError(t, err)
		assert.Equal(t, `{"a":{"b":"a.b","c":"a.c"},"d":"d"}`, string(data))
	})

	t.Run("javascript uses the intlKeys constant", func(t *testing.T) {
		data, err := env.exports.KeysExport(ctx, FormatJavaScript, false)
		require.NoError(t, err)

		out := string(data)
		assert.Contains(t, out, `export const intlKeys = {"a":{"b":"a.b","c":"a.c"},"d":"d"};`)
		assert.True(t, strings.HasSuffix(out, "export default intlKeys;\n"))
	})

	t.Run("deleted keys disappear from the tree", func(t *testing.T) {
		keys, err := env.catalog.Keys(ctx)
		require.NoError(t, err)
		for _, k := range keys {
			if k.Key == "d" {
				require.NoError(t, env.catalog.DeleteKey(ctx, env.admin, k.ID))
			}
		}

		data, err := env.exports.KeysExport(ctx, FormatJSON, false)
		require.NoError(t, err)
		assert.Equal(t, `{"a":{"b":"a.b","c":"a.c"}}`, string(data))
	})
}

func TestExportAll(t *testing.T) {
	env := seedExportFixture(t, newTestEnv(t))
	ctx := context.Background()

	dump, err := env.exports.ExportAll(ctx)
	require.NoError(t, err)

	assert.Len(t, dump.Languages, 1)
	assert.Len(t, dump.Keys, 3)
	assert.Len(t, dump.Translations, 3)
	require.NotEmpty(t, dump.Users)
	for _, u := range dump.Users {
		assert.Empty(t, u.PasswordHash)
	}

	// The dump must serialize cleanly.
	_, err = json.Marshal(dump)
	require.NoError(t, err)
}
