package interfaces

import (
	"context"
	"errors"

	"github.com/goliatone/go-translink/internal/domain"
)

// ErrTranslationMissing is returned by adapters that need to distinguish a
// missing counterpart from a lookup failure. Resolvers treat it as absence.
var ErrTranslationMissing = errors.New("translation missing")

// TranslationIndex maps content items to their counterparts in other
// languages and owns the process wide language state of the host
// translation system.
type TranslationIndex interface {
	// GetTranslatedID returns the id of the item's counterpart in the given
	// language. The boolean is false when no counterpart exists.
	GetTranslatedID(ctx context.Context, id domain.ID, contentType domain.ContentType, languageCode string) (domain.ID, bool, error)
	GetActiveLanguages(ctx context.Context) ([]domain.LanguageDescriptor, error)
	GetHiddenLanguages(ctx context.Context) (map[string]struct{}, error)
	// GetElementLanguage returns the language code registered for an element
	// id under the post_<type> / tax_<taxonomy> element type.
	GetElementLanguage(ctx context.Context, id domain.ID, elementType string) (string, bool, error)
	LanguageSwitcher
}

// LanguageSwitcher exposes the global switches of the host translation
// system. Callers must restore any value they change; see languages.Scope.
type LanguageSwitcher interface {
	GetCurrentLanguage(ctx context.Context) string
	SwitchLanguage(ctx context.Context, code string) error
	// AdjustIDs reports whether term lookups are rewritten to the current
	// language counterpart.
	AdjustIDs(ctx context.Context) bool
	SetAdjustIDs(ctx context.Context, enabled bool)
}

// LinkFilter lets the translation system override a generated URL.
type LinkFilter interface {
	FilterLink(ctx context.Context, baseURL string, language domain.LanguageDescriptor) string
}

// HomeURLResolver returns the root URL for a language.
type HomeURLResolver interface {
	HomeURL(ctx context.Context, language domain.LanguageDescriptor) string
}

// MenuLocationStore exposes the theme location to menu assignments.
type MenuLocationStore interface {
	MenuLocations(ctx context.Context) (map[string]domain.ID, error)
}
