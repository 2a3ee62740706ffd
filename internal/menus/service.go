package menus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/languages"
	"github.com/goliatone/go-translink/internal/logging"
	"github.com/goliatone/go-translink/internal/storage"
	"github.com/goliatone/go-translink/pkg/interfaces"
)

// Service resolves menus and theme locations across languages.
type Service interface {
	// ResolveLocationsForLanguage returns the ids every requested location
	// takes in the target language, or in each active language when target
	// is nil or blank.
	ResolveLocationsForLanguage(ctx context.Context, locationIDs []domain.ID, target *string) ([]domain.ID, error)
	// MenuLanguage returns the language code of menu, or nil when unknown.
	MenuLanguage(ctx context.Context, menu domain.ContentItem) (*string, error)
	// MenuLocations returns the theme locations whose current language menu
	// is menu. A nil slice means no location matched.
	MenuLocations(ctx context.Context, menu domain.ContentItem) ([]string, error)
	// TranslateLocationMap maps every location to its menu in language,
	// defaulting to the current language. Untranslated menus keep their id.
	TranslateLocationMap(ctx context.Context, locations map[string]domain.ID, language string) (map[string]domain.ID, error)
}

var (
	ErrStoreRequired     = errors.New("menus: content store is required")
	ErrIndexRequired     = errors.New("menus: translation index is required")
	ErrLocationsRequired = errors.New("menus: menu location store is required")
	ErrContentMissing    = errors.New("menus: content store returned no record for a menu id")
)

// ServiceOption configures the menu service.
type ServiceOption func(*service)

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDedupPolicy selects how repeated ids are handled by
// ResolveLocationsForLanguage.
func WithDedupPolicy(policy DedupPolicy) ServiceOption {
	return func(s *service) {
		s.dedup = policy
	}
}

// WithLocationStore wires the theme location bindings used by MenuLocations.
func WithLocationStore(store interfaces.MenuLocationStore) ServiceOption {
	return func(s *service) {
		if store != nil {
			s.locations = store
		}
	}
}

type service struct {
	store     interfaces.ContentStore
	index     interfaces.TranslationIndex
	locations interfaces.MenuLocationStore
	dedup     DedupPolicy
	logger    interfaces.Logger
}

// NewService constructs a menu service.
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
		dedup:  DedupNone,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) ResolveLocationsForLanguage(ctx context.Context, locationIDs []domain.ID, target *string) ([]domain.ID, error) {
	if len(locationIDs) == 0 {
		return []domain.ID{}, nil
	}

	codes, err := s.scopeLanguages(ctx, target)
	if err != nil {
		return nil, err
	}

	restore := languages.SuspendAdjustIDs(ctx, s.index)
	defer restore()

	resolved := make([]domain.ID, 0, len(locationIDs)*len(codes))
	for _, id := range locationIDs {
		for _, code := range codes {
			translated, ok, err := s.index.GetTranslatedID(ctx, id, domain.ContentTypeMenu, code)
			if err != nil {
				if errors.Is(err, interfaces.ErrTranslationMissing) {
					continue
				}
				return nil, err
			}
			if ok {
				resolved = append(resolved, translated)
			}
		}
	}

	resolved = s.dedup.apply(resolved)
	s.logger.WithContext(ctx).Debug("menus.locations.resolved", "requested", len(locationIDs), "languages", len(codes), "resolved", len(resolved))
	return resolved, nil
}

func (s *service) scopeLanguages(ctx context.Context, target *string) ([]string, error) {
	if target != nil {
		if code := strings.TrimSpace(*target); code != "" {
			return []string{code}, nil
		}
	}
	active, err := s.index.GetActiveLanguages(ctx)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(active))
	for _, lang := range active {
		codes = append(codes, lang.Code)
	}
	return codes, nil
}

func (s *service) MenuLanguage(ctx context.Context, menu domain.ContentItem) (*string, error) {
	elementType := domain.ElementType(menu)
	code, ok, err := s.index.GetElementLanguage(ctx, menu.ID, elementType)
	if err != nil {
		return nil, err
	}
	if ok && code != "" {
		return &code, nil
	}

	// Some indexes register menus under the alternate key only. Reload the
	// exact record so the alternate key is not taken from a rewritten copy.
	restore := languages.SuspendAdjustIDs(ctx, s.index)
	defer restore()

	altID := menu.AltID
	if altID == nil {
		record, err := s.store.GetByID(ctx, menu.ID, domain.ContentTypeMenu)
		if err != nil {
			if storage.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		if record == nil {
			return nil, fmt.Errorf("%w: %s", ErrContentMissing, menu.ID)
		}
		altID = record.AltID
	}
	if altID == nil {
		return nil, nil
	}

	code, ok, err = s.index.GetElementLanguage(ctx, *altID, elementType)
	if err != nil {
		return nil, err
	}
	if !ok || code == "" {
		return nil, nil
	}
	return &code, nil
}

func (s *service) MenuLocations(ctx context.Context, menu domain.ContentItem) ([]string, error) {
	if s.locations == nil {
		return nil, ErrLocationsRequired
	}

	// Locations point at default language menus; comparing rewritten ids
	// finds the locations a translated menu stands in for.
	restore := languages.EnableAdjustIDs(ctx, s.index)
	defer restore()

	current, err := s.store.GetByID(ctx, menu.ID, domain.ContentTypeMenu)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: %s", ErrContentMissing, menu.ID)
	}

	bindings, err := s.locations.MenuLocations(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	slices.Sort(names)

	var matched []string
	for _, name := range names {
		bound, err := s.store.GetByID(ctx, bindings[name], domain.ContentTypeMenu)
		if err != nil {
			if storage.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if bound == nil {
			return nil, fmt.Errorf("%w: %s (location %s)", ErrContentMissing, bindings[name], name)
		}
		if bound.ID == current.ID {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

func (s *service) TranslateLocationMap(ctx context.Context, locations map[string]domain.ID, language string) (map[string]domain.ID, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		language = s.index.GetCurrentLanguage(ctx)
	}

	restore := languages.SuspendAdjustIDs(ctx, s.index)
	defer restore()

	out := make(map[string]domain.ID, len(locations))
	for name, id := range locations {
		out[name] = id
		if language == "" || language == domain.LanguageAll {
			continue
		}
		translated, ok, err := s.index.GetTranslatedID(ctx, id, domain.ContentTypeMenu, language)
		if err != nil && !errors.Is(err, interfaces.ErrTranslationMissing) {
			return nil, err
		}
		if ok {
			out[name] = translated
		}
	}
	return out, nil
}
