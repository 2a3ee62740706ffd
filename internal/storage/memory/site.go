package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/storage"
	"github.com/goliatone/go-translink/pkg/interfaces"
)

type recordKey struct {
	contentType domain.ContentType
	id          domain.ID
}

type groupKey struct {
	contentType domain.ContentType
	group       int64
}

type elementKey struct {
	elementType string
	id          domain.ID
}

type translationRecord struct {
	group    int64
	language string
}

// Site is an in-memory content store and translation index. It mimics the
// host translation system closely enough for tests and the CLI: a current
// language, a hidden language set and id rewriting of term lookups.
type Site struct {
	mu sync.RWMutex

	items     map[recordKey]*domain.ContentItem
	records   map[recordKey]translationRecord
	groups    map[groupKey]map[string]domain.ID
	elements  map[elementKey]string
	languages []domain.LanguageDescriptor
	hidden    map[string]struct{}
	locations map[string]domain.ID

	current   string
	adjustIDs bool
}

var (
	_ interfaces.ContentStore      = (*Site)(nil)
	_ interfaces.TranslationIndex  = (*Site)(nil)
	_ interfaces.MenuLocationStore = (*Site)(nil)
)

// NewSite constructs an empty site. Id rewriting starts enabled, matching
// the default of the host translation system.
func NewSite() *Site {
	return &Site{
		items:     make(map[recordKey]*domain.ContentItem),
		records:   make(map[recordKey]translationRecord),
		groups:    make(map[groupKey]map[string]domain.ID),
		elements:  make(map[elementKey]string),
		hidden:    make(map[string]struct{}),
		locations: make(map[string]domain.ID),
		adjustIDs: true,
	}
}

// AddLanguage registers an active language. The first default language
// becomes the current language.
func (s *Site) AddLanguage(lang domain.LanguageDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.languages {
		if existing.Code == lang.Code {
			s.languages[i] = lang
			return
		}
	}
	s.languages = append(s.languages, lang)
	if lang.IsHidden {
		s.hidden[lang.Code] = struct{}{}
	}
	if lang.IsDefault && s.current == "" {
		s.current = lang.Code
	}
}

// HideLanguage marks an active language as hidden.
func (s *Site) HideLanguage(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden[code] = struct{}{}
}

// AddItem stores a content item. When group is non-zero the item joins that
// translation group under its own language.
func (s *Site) AddItem(item domain.ContentItem, group int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey{contentType: item.Type, id: item.ID}
	s.items[key] = cloneItem(&item)

	if group == 0 || item.Language == "" {
		return
	}
	s.records[key] = translationRecord{group: group, language: item.Language}
	gk := groupKey{contentType: item.Type, group: group}
	members, ok := s.groups[gk]
	if !ok {
		members = make(map[string]domain.ID)
		s.groups[gk] = members
	}
	members[item.Language] = item.ID
	s.elements[elementKey{elementType: domain.ElementType(item), id: item.ID}] = item.Language
	if item.AltID != nil {
		s.elements[elementKey{elementType: domain.ElementType(item), id: *item.AltID}] = item.Language
	}
}

// AssignMenuLocation binds a theme location to a menu id.
func (s *Site) AssignMenuLocation(location string, menuID domain.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[location] = menuID
}

func (s *Site) GetByID(_ context.Context, id domain.ID, contentType domain.ContentType) (*domain.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if contentType.IsTermLike() {
		id = s.adjustLocked(id, contentType)
	}
	item, ok := s.items[recordKey{contentType: contentType, id: id}]
	if !ok {
		return nil, &storage.NotFoundError{Resource: string(contentType), Key: id.String()}
	}
	return cloneItem(item), nil
}

func (s *Site) GetBySlugPath(_ context.Context, contentType domain.ContentType, path []string) (*domain.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var current *domain.ContentItem
	for _, segment := range path {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		next := s.findChildLocked(contentType, current, segment)
		if next == nil {
			return nil, &storage.NotFoundError{Resource: string(contentType), Key: strings.Join(path, "/")}
		}
		current = next
	}
	if current == nil {
		return nil, &storage.NotFoundError{Resource: string(contentType), Key: strings.Join(path, "/")}
	}
	return cloneItem(current), nil
}

func (s *Site) findChildLocked(contentType domain.ContentType, parent *domain.ContentItem, slug string) *domain.ContentItem {
	var candidates []*domain.ContentItem
	for key, item := range s.items {
		if key.contentType != contentType || item.Slug != slug {
			continue
		}
		if parent == nil && item.HasParent() {
			continue
		}
		if parent != nil && (!item.HasParent() || *item.ParentID != parent.ID) {
			continue
		}
		candidates = append(candidates, item)
	}
	if len(candidates) == 0 {
		return nil
	}
	slices.SortFunc(candidates, func(a, b *domain.ContentItem) int {
		return cmp.Compare(a.ID, b.ID)
	})
	for _, candidate := range candidates {
		if candidate.Language == s.current {
			return candidate
		}
	}
	return candidates[0]
}

func (s *Site) GetTranslatedID(_ context.Context, id domain.ID, contentType domain.ContentType, languageCode string) (domain.ID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[recordKey{contentType: contentType, id: id}]
	if !ok || languageCode == "" || languageCode == domain.LanguageAll {
		return 0, false, nil
	}
	translated, ok := s.groups[groupKey{contentType: contentType, group: record.group}][languageCode]
	if !ok {
		return 0, false, nil
	}
	if contentType.IsTermLike() {
		translated = s.adjustLocked(translated, contentType)
	}
	return translated, true, nil
}

// adjustLocked rewrites a term-like id to its current language counterpart
// while id rewriting is enabled.
func (s *Site) adjustLocked(id domain.ID, contentType domain.ContentType) domain.ID {
	if !s.adjustIDs || s.current == "" || s.current == domain.LanguageAll {
		return id
	}
	record, ok := s.records[recordKey{contentType: contentType, id: id}]
	if !ok {
		return id
	}
	if adjusted, ok := s.groups[groupKey{contentType: contentType, group: record.group}][s.current]; ok {
		return adjusted
	}
	return id
}

func (s *Site) GetActiveLanguages(context.Context) ([]domain.LanguageDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.languages), nil
}

func (s *Site) GetHiddenLanguages(context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hidden := make(map[string]struct{}, len(s.hidden))
	for code := range s.hidden {
		hidden[code] = struct{}{}
	}
	return hidden, nil
}

func (s *Site) GetElementLanguage(_ context.Context, id domain.ID, elementType string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lang, ok := s.elements[elementKey{elementType: elementType, id: id}]
	return lang, ok, nil
}

func (s *Site) GetCurrentLanguage(context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Site) SwitchLanguage(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code != domain.LanguageAll && !slices.ContainsFunc(s.languages, func(l domain.LanguageDescriptor) bool {
		return l.Code == code
	}) {
		return storage.ErrLanguageUnknown
	}
	s.current = code
	return nil
}

func (s *Site) AdjustIDs(context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adjustIDs
}

func (s *Site) SetAdjustIDs(_ context.Context, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjustIDs = enabled
}

func (s *Site) MenuLocations(context.Context) (map[string]domain.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.ID, len(s.locations))
	for location, id := range s.locations {
		out[location] = id
	}
	return out, nil
}

func cloneItem(item *domain.ContentItem) *domain.ContentItem {
	if item == nil {
		return nil
	}
	cloned := *item
	if item.ParentID != nil {
		parent := *item.ParentID
		cloned.ParentID = &parent
	}
	if item.AltID != nil {
		alt := *item.AltID
		cloned.AltID = &alt
	}
	return &cloned
}
