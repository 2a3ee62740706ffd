package translations

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/languages"
	"github.com/goliatone/go-translink/internal/links"
	"github.com/goliatone/go-translink/internal/logging"
	"github.com/goliatone/go-translink/internal/storage"
	"github.com/goliatone/go-translink/pkg/interfaces"
)

// Service resolves sibling translations, canonical URLs and locale
// metadata for content items.
type Service interface {
	// ListTranslations returns one link per active language that holds a
	// distinct counterpart of item, in active language order.
	ListTranslations(ctx context.Context, item domain.ContentItem) ([]domain.TranslationLink, error)
	// ListTranslated returns the counterpart items themselves.
	ListTranslated(ctx context.Context, item domain.ContentItem) ([]domain.ContentItem, error)
	// ListTermTranslations is the taxonomy flavour of ListTranslations.
	ListTermTranslations(ctx context.Context, item domain.ContentItem) ([]domain.TermTranslation, error)
	// ResolveCanonicalURL returns the public URL of item under language.
	ResolveCanonicalURL(ctx context.Context, item domain.ContentItem, language domain.LanguageDescriptor) (string, error)
	// LocalizedURL returns the canonical URL of item in its own language.
	LocalizedURL(ctx context.Context, item domain.ContentItem) (string, error)
	// LocaleInfo projects the item's language. A nil result means the
	// language system has no locale for the item.
	LocaleInfo(ctx context.Context, item domain.ContentItem, includeLocale bool) (*domain.LocaleInfo, error)
	// ItemLanguage returns the active language the item belongs to, or nil.
	ItemLanguage(ctx context.Context, item domain.ContentItem) (*domain.LanguageDescriptor, error)
}

var (
	ErrStoreRequired  = errors.New("translations: content store is required")
	ErrIndexRequired  = errors.New("translations: translation index is required")
	ErrContentMissing = errors.New("translations: content store has no record for a referenced id")
	ErrHierarchyCycle = errors.New("translations: parent chain contains a cycle")
)

// ServiceOption configures the translation service.
type ServiceOption func(*service)

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLinkFilter wires the filter applied to language base URLs.
func WithLinkFilter(filter interfaces.LinkFilter) ServiceOption {
	return func(s *service) {
		if filter != nil {
			s.links = filter
		}
	}
}

// WithHomeURLResolver overrides how language root URLs are found. The
// default reads LanguageDescriptor.HomeURL.
func WithHomeURLResolver(resolver interfaces.HomeURLResolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.homes = resolver
		}
	}
}

type service struct {
	store  interfaces.ContentStore
	index  interfaces.TranslationIndex
	links  interfaces.LinkFilter
	homes  interfaces.HomeURLResolver
	logger interfaces.Logger
}

// NewService constructs a translation service.
func NewService(store interfaces.ContentStore, index interfaces.TranslationIndex, opts ...ServiceOption) (Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	s := &service{
		store:  store,
		index:  index,
		links:  links.PassthroughFilter{},
		homes:  links.StaticHomeURLs(nil),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type counterpart struct {
	language domain.LanguageDescriptor
	item     *domain.ContentItem
}

// counterparts walks the active languages and loads every distinct
// counterpart of item. Id rewriting is suspended for the walk so term
// lookups return the exact records the index points at.
func (s *service) counterparts(ctx context.Context, item domain.ContentItem) ([]counterpart, error) {
	active, err := s.index.GetActiveLanguages(ctx)
	if err != nil {
		return nil, err
	}

	restore := languages.SuspendAdjustIDs(ctx, s.index)
	defer restore()

	logger := logging.WithItemContext(s.logger.WithContext(ctx), item.ID.String(), string(item.Type), "")
	out := make([]counterpart, 0, len(active))
	for _, lang := range active {
		id, ok, err := s.index.GetTranslatedID(ctx, item.ID, item.Type, lang.Code)
		if err != nil {
			if errors.Is(err, interfaces.ErrTranslationMissing) {
				continue
			}
			return nil, err
		}
		if !ok || id == item.ID {
			logger.Trace("translations.language.skipped", "language", lang.Code)
			continue
		}

		record, err := s.store.GetByID(ctx, id, item.Type)
		if err != nil {
			if storage.IsNotFound(err) {
				return nil, fmt.Errorf("%w: %s %s (%s)", ErrContentMissing, item.Type, id, lang.Code)
			}
			return nil, err
		}
		if record == nil {
			return nil, fmt.Errorf("%w: %s %s (%s)", ErrContentMissing, item.Type, id, lang.Code)
		}
		lang.Locale = languages.NormalizeLocale(lang.Locale)
		out = append(out, counterpart{language: lang, item: record})
	}
	return out, nil
}

func (s *service) ListTranslations(ctx context.Context, item domain.ContentItem) ([]domain.TranslationLink, error) {
	found, err := s.counterparts(ctx, item)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TranslationLink, 0, len(found))
	for _, c := range found {
		href, err := s.ResolveCanonicalURL(ctx, *c.item, c.language)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.TranslationLink{
			Locale:    c.language.Locale,
			ContentID: c.item.ID,
			Title:     c.item.Title,
			Href:      href,
		})
	}
	return out, nil
}

func (s *service) ListTranslated(ctx context.Context, item domain.ContentItem) ([]domain.ContentItem, error) {
	found, err := s.counterparts(ctx, item)
	if err != nil {
		return nil, err
	}
	items := make([]domain.ContentItem, 0, len(found))
	for _, c := range found {
		items = append(items, *c.item)
	}
	return items, nil
}

func (s *service) ListTermTranslations(ctx context.Context, item domain.ContentItem) ([]domain.TermTranslation, error) {
	found, err := s.counterparts(ctx, item)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TermTranslation, 0, len(found))
	for _, c := range found {
		href, err := s.ResolveCanonicalURL(ctx, *c.item, c.language)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.TermTranslation{
			ID:         domain.GlobalID("term", c.item.ID),
			DatabaseID: c.item.ID,
			Href:       href,
			Locale:     c.language.Locale,
			Name:       c.item.Title,
		})
	}
	return out, nil
}

func (s *service) LocalizedURL(ctx context.Context, item domain.ContentItem) (string, error) {
	lang, err := s.ItemLanguage(ctx, item)
	if err != nil {
		return "", err
	}
	if lang == nil {
		return item.DefaultURL, nil
	}
	return s.ResolveCanonicalURL(ctx, item, *lang)
}

func (s *service) LocaleInfo(ctx context.Context, item domain.ContentItem, includeLocale bool) (*domain.LocaleInfo, error) {
	lang, err := s.ItemLanguage(ctx, item)
	if err != nil {
		return nil, err
	}
	return domain.ProjectLocaleInfo(lang, includeLocale), nil
}

func (s *service) ItemLanguage(ctx context.Context, item domain.ContentItem) (*domain.LanguageDescriptor, error) {
	code, err := s.elementLanguage(ctx, item)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, nil
	}

	active, err := s.index.GetActiveLanguages(ctx)
	if err != nil {
		return nil, err
	}
	lang := languages.FindByCode(active, code)
	if lang == nil {
		s.logger.WithContext(ctx).Warn("translations.language.inactive", "language", code, "content_id", item.ID.String())
		return nil, nil
	}
	lang.Locale = languages.NormalizeLocale(lang.Locale)
	return lang, nil
}

// elementLanguage asks the index for the item's language, retrying with the
// alternate key when the primary id is not registered. The item's own
// Language field is the last resort.
func (s *service) elementLanguage(ctx context.Context, item domain.ContentItem) (string, error) {
	elementType := domain.ElementType(item)
	code, ok, err := s.index.GetElementLanguage(ctx, item.ID, elementType)
	if err != nil {
		return "", err
	}
	if ok && code != "" {
		return code, nil
	}

	if item.AltID != nil {
		restore := languages.SuspendAdjustIDs(ctx, s.index)
		code, ok, err = s.index.GetElementLanguage(ctx, *item.AltID, elementType)
		restore()
		if err != nil {
			return "", err
		}
		if ok && code != "" {
			return code, nil
		}
	}
	return item.Language, nil
}
