package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/intl-tools/translator-service/internal/domain/model"
	"github.com/intl-tools/translator-service/internal/repository"
)

// ExportFormat selects the rendering of a bundle.
type ExportFormat string

const (
	FormatJSON       ExportFormat = "json"
	FormatJavaScript ExportFormat = "javascript"
)

// ParseExportFormat converts a query value into an ExportFormat. Empty
// defaults to JSON.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "javascript", "js":
		return FormatJavaScript, nil
	default:
		return "", fmt.Errorf("unknown export format: %q", s)
	}
}

// ContentType returns the MIME type of the rendered bundle.
func (f ExportFormat) ContentType() string {
	if f == FormatJavaScript {
		return "application/javascript"
	}
	return "application/json"
}

const jsExportHeader = "// This file was auto-generated. Do not edit by hand!\n\n/* tslint:disable */\n\n"

// Dump is the full-catalog export bundle.
type Dump struct {
	Languages    []model.Language    `json:"languages"`
	Keys         []model.Key         `json:"keys"`
	Translations []model.Translation `json:"translations"`
	Users        []model.User        `json:"users"`
}

// ExportService renders consumer-ready language bundles.
type ExportService interface {
	TranslationsExport(ctx context.Context, languageID uuid.UUID, format ExportFormat, pretty bool) ([]byte, error)
	KeysExport(ctx context.Context, format ExportFormat, pretty bool) ([]byte, error)
	ExportAll(ctx context.Context) (*Dump, error)
}

// ExportServiceImpl implements ExportService.
type ExportServiceImpl struct {
	translationRepo repository.TranslationRepositoryInterface
	keyRepo         repository.KeyRepositoryInterface
	languageRepo    repository.LanguageRepositoryInterface
	userRepo        repository.UserRepositoryInterface
}

// NewExportService creates a new export service.
func NewExportService(
	translationRepo repository.TranslationRepositoryInterface,
	keyRepo repository.KeyRepositoryInterface,
	languageRepo repository.LanguageRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) *ExportServiceImpl {
	return &ExportServiceImpl{
		translationRepo: translationRepo,
		keyRepo:         keyRepo,
		languageRepo:    languageRepo,
		userRepo:        userRepo,
	}
}

// TranslationsExport renders the current translations of a language as a
// flat key-to-value bundle. Output is deterministic: members are sorted by
// key, pretty output uses two-space indentation.
func (s *ExportServiceImpl) TranslationsExport(ctx context.Context, languageID uuid.UUID, format ExportFormat, pretty bool) ([]byte, error) {
	joined, err := s.translationRepo.CurrentWithKeysForLanguage(ctx, languageID)
	if err != nil {
		return nil, err
	}

	// Duplicate key strings cannot occur among live keys; if they ever do,
	// last write wins in ascending key creation order.
	sort.SliceStable(joined, func(i, j int) bool {
		return joined[i].Key.CreatedAt.Before(joined[j].Key.CreatedAt)
	})
	bundle := make(map[string]string, len(joined))
	for _, tk := range joined {
		bundle[tk.Key.Key] = tk.Translation.Translation
	}

	return render(bundle, format, pretty, "translations")
}

// KeysExport renders the key tree built from the live key set.
func (s *ExportServiceImpl) KeysExport(ctx context.Context, format ExportFormat, pretty bool) ([]byte, error) {
	keys, err := s.keyRepo.ListLive(ctx)
	if err != nil {
		return nil, err
	}
	return render(BuildKeyTree(keys), format, pretty, "intlKeys")
}

// ExportAll assembles the full dump bundle: languages, keys, translations
// and sanitized users.
func (s *ExportServiceImpl) ExportAll(ctx context.Context) (*Dump, error) {
	languages, err := s.languageRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	keys, err := s.keyRepo.ListLive(ctx)
	if err != nil {
		return nil, err
	}
	translations, err := s.translationRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx, repository.UserFilter{})
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}

	return &Dump{
		Languages:    languages,
		Keys:         keys,
		Translations: translations,
		Users:        users,
	}, nil
}

// render serializes v to JSON, optionally wrapping it in the JavaScript
// module template with the given constant name.
func render(v interface{}, format ExportFormat, pretty bool, constName string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("render export: %w", err)
	}

	if format != FormatJavaScript {
		return data, nil
	}

	out := make([]byte, 0, len(jsExportHeader)+len(data)+64)
	out = append(out, jsExportHeader...)
	out = append(out, fmt.Sprintf("export const %s = ", constName)...)
	out = append(out, data...)
	out = append(out, fmt.Sprintf(";\n\nexport default %s;\n", constName)...)
	return out, nil
}
