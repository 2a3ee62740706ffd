package graphqlfields

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/languages"
	"github.com/goliatone/go-translink/internal/menus"
	"github.com/goliatone/go-translink/internal/translations"
)

// Field names served by the resolver.
const (
	FieldLocale           = "locale"
	FieldTranslations     = "translations"
	FieldTranslated       = "translated"
	FieldLocalizedWpmlURL = "localizedWpmlUrl"
	FieldLanguages        = "languages"
	FieldLocales          = "locales"
	FieldLanguage         = "language"
	FieldLocations        = "locations"
)

var (
	ErrUnknownField = errors.New("graphqlfields: unknown field")
	ErrItemRequired = errors.New("graphqlfields: field requires a content item")
)

// FieldFunc resolves one field.
type FieldFunc func(ctx context.Context, src Source) (any, error)

// Resolver binds the translation services to API field names.
type Resolver struct {
	translations translations.Service
	languages    languages.Service
	menus        menus.Service
	fields       map[string]FieldFunc
}

// NewResolver constructs a resolver. The menu service is optional; without
// it the menu fields are not registered.
func NewResolver(tr translations.Service, langs languages.Service, menuSvc menus.Service) *Resolver {
	r := &Resolver{
		translations: tr,
		languages:    langs,
		menus:        menuSvc,
	}
	r.fields = map[string]FieldFunc{
		FieldLocale:           r.locale,
		FieldTranslations:     r.translationsField,
		FieldTranslated:       r.translated,
		FieldLocalizedWpmlURL: r.localizedURL,
		FieldLanguages:        r.languagesField,
		FieldLocales:          r.locales,
	}
	if menuSvc != nil {
		r.fields[FieldLanguage] = r.menuLanguage
		r.fields[FieldLocations] = r.menuLocations
	}
	return r
}

// Fields returns the registered field names in sorted order.
func (r *Resolver) Fields() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve runs the resolver registered for field.
func (r *Resolver) Resolve(ctx context.Context, field string, src Source) (any, error) {
	fn, ok := r.fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return fn(ctx, src)
}

func (r *Resolver) locale(ctx context.Context, src Source) (any, error) {
	if src.Item == nil {
		return nil, ErrItemRequired
	}
	info, err := r.translations.LocaleInfo(ctx, *src.Item, src.selected("locale"))
	if err != nil || info == nil {
		return nil, err
	}
	return info, nil
}

func (r *Resolver) translationsField(ctx context.Context, src Source) (any, error) {
	if src.Item == nil {
		return nil, ErrItemRequired
	}
	switch src.Item.Type {
	case domain.ContentTypeTerm, domain.ContentTypeMenu:
		return r.translations.ListTermTranslations(ctx, *src.Item)
	default:
		return r.translations.ListTranslations(ctx, *src.Item)
	}
}

func (r *Resolver) translated(ctx context.Context, src Source) (any, error) {
	if src.Item == nil {
		return nil, ErrItemRequired
	}
	return r.translations.ListTranslated(ctx, *src.Item)
}

func (r *Resolver) localizedURL(ctx context.Context, src Source) (any, error) {
	if src.Item == nil {
		return nil, ErrItemRequired
	}
	return r.translations.LocalizedURL(ctx, *src.Item)
}

func (r *Resolver) languagesField(ctx context.Context, _ Source) (any, error) {
	active, err := r.languages.Languages(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]LanguageInfo, 0, len(active))
	for _, lang := range active {
		out = append(out, languageInfo(lang))
	}
	return out, nil
}

func (r *Resolver) locales(ctx context.Context, _ Source) (any, error) {
	return r.languages.Locales(ctx)
}

func (r *Resolver) menuLanguage(ctx context.Context, src Source) (any, error) {
	if src.Item == nil {
		return nil, ErrItemRequired
	}
	code, err := r.menus.MenuLanguage(ctx, *src.Item)
	if err != nil || code == nil {
		return nil, err
	}
	return *code, nil
}

// menuLocations only steps in when the host found no location for the menu,
// which happens for menus outside the default language.
func (r *Resolver) menuLocations(ctx context.Context, src Source) (any, error) {
	if src.Current != nil {
		if current, ok := src.Current.([]string); !ok || current != nil {
			return src.Current, nil
		}
	}
	if src.Item == nil {
		return nil, ErrItemRequired
	}
	found, err := r.menus.MenuLocations(ctx, *src.Item)
	if err != nil || found == nil {
		return nil, err
	}
	return found, nil
}
