package bunstore

import (
	"context"
	"strings"
	"sync"

	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/identity"
	"github.com/goliatone/go-translink/internal/logging"
	"github.com/goliatone/go-translink/internal/storage"
	"github.com/goliatone/go-translink/pkg/interfaces"
	"github.com/uptrace/bun"
)

// Site is a bun backed content store and translation index. The current
// language and the id rewriting switch are process state, not rows.
type Site struct {
	db *bun.DB

	// read side, optionally cached
	content      repository.Repository[*ContentRecord]
	translations repository.Repository[*TranslationRecord]
	languages    repository.Repository[*LanguageRecord]
	locations    repository.Repository[*LocationRecord]

	// write side, never cached
	contentWriter     repository.Repository[*ContentRecord]
	translationWriter repository.Repository[*TranslationRecord]
	languageWriter    repository.Repository[*LanguageRecord]
	locationWriter    repository.Repository[*LocationRecord]

	cacheService cache.CacheService
	prefixes     []string
	logger       interfaces.Logger

	mu        sync.RWMutex
	current   string
	adjustIDs bool
}

var (
	_ interfaces.ContentStore      = (*Site)(nil)
	_ interfaces.TranslationIndex  = (*Site)(nil)
	_ interfaces.MenuLocationStore = (*Site)(nil)
)

// Option configures a Site.
type Option func(*siteOptions)

type siteOptions struct {
	cacheService cache.CacheService
	serializer   cache.KeySerializer
	logger       interfaces.Logger
}

// WithCache enables read caching through go-repository-cache.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(o *siteOptions) {
		o.cacheService = service
		o.serializer = serializer
	}
}

// WithLogger overrides the storage logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *siteOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewSite builds a Site over db. The schema must already exist, see
// EnsureSchema.
func NewSite(db *bun.DB, opts ...Option) *Site {
	options := siteOptions{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(&options)
	}

	s := &Site{
		db:                db,
		contentWriter:     NewContentRepository(db),
		translationWriter: NewTranslationRepository(db),
		languageWriter:    NewLanguageRepository(db),
		locationWriter:    NewLocationRepository(db),
		logger:            options.logger,
		adjustIDs:         true,
	}
	s.content = s.contentWriter
	s.translations = s.translationWriter
	s.languages = s.languageWriter
	s.locations = s.locationWriter

	if options.cacheService != nil && options.serializer != nil {
		s.content = repositorycache.New(s.content, options.cacheService, options.serializer)
		s.translations = repositorycache.New(s.translations, options.cacheService, options.serializer)
		s.languages = repositorycache.New(s.languages, options.cacheService, options.serializer)
		s.locations = repositorycache.New(s.locations, options.cacheService, options.serializer)
		s.cacheService = options.cacheService
		s.prefixes = []string{
			cachePrefix(contentNamespace),
			cachePrefix(translationNamespace),
			cachePrefix(languageNamespace),
			cachePrefix(locationNamespace),
		}
	}
	return s
}

// InvalidateCache drops every cached read of the site.
func (s *Site) InvalidateCache(ctx context.Context) error {
	if s.cacheService == nil {
		return nil
	}
	for _, prefix := range s.prefixes {
		if err := s.cacheService.DeleteByPrefix(ctx, prefix); err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) GetByID(ctx context.Context, id domain.ID, contentType domain.ContentType) (*domain.ContentItem, error) {
	if contentType.IsTermLike() {
		adjusted, err := s.adjust(ctx, id, contentType)
		if err != nil {
			return nil, err
		}
		id = adjusted
	}
	record, err := s.content.GetByID(ctx, identity.ContentUUID(contentType, id).String())
	if err != nil {
		return nil, mapRepositoryError(err, string(contentType), id.String())
	}
	return record.toDomain(), nil
}

func (s *Site) GetBySlugPath(ctx context.Context, contentType domain.ContentType, path []string) (*domain.ContentItem, error) {
	current := s.GetCurrentLanguage(ctx)
	key := strings.Join(path, "/")

	var parent *ContentRecord
	for _, segment := range path {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		records, _, err := s.content.List(ctx,
			repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
				q = q.Where("?TableAlias.content_type = ?", string(contentType)).
					Where("?TableAlias.slug = ?", segment)
				if parent == nil {
					q = q.Where("?TableAlias.parent_id IS NULL")
				} else {
					q = q.Where("?TableAlias.parent_id = ?", parent.ElementID)
				}
				return q.OrderExpr("?TableAlias.element_id ASC")
			}),
		)
		if err != nil {
			return nil, mapRepositoryError(err, string(contentType), key)
		}
		if len(records) == 0 {
			return nil, &storage.NotFoundError{Resource: string(contentType), Key: key}
		}
		parent = preferLanguage(records, current)
	}
	if parent == nil {
		return nil, &storage.NotFoundError{Resource: string(contentType), Key: key}
	}
	return parent.toDomain(), nil
}

func preferLanguage(records []*ContentRecord, code string) *ContentRecord {
	for _, record := range records {
		if record.Language == code {
			return record
		}
	}
	return records[0]
}

func (s *Site) GetTranslatedID(ctx context.Context, id domain.ID, contentType domain.ContentType, languageCode string) (domain.ID, bool, error) {
	if languageCode == "" || languageCode == domain.LanguageAll {
		return 0, false, nil
	}
	record, err := s.translationRecord(ctx, id, contentType)
	if err != nil || record == nil {
		return 0, false, err
	}
	member, err := s.groupMember(ctx, contentType, record.GroupID, languageCode)
	if err != nil || member == nil {
		return 0, false, err
	}
	translated := domain.ID(member.ElementID)
	if contentType.IsTermLike() {
		translated, err = s.adjust(ctx, translated, contentType)
		if err != nil {
			return 0, false, err
		}
	}
	return translated, true, nil
}

// adjust rewrites a term-like id to its current language counterpart while
// id rewriting is enabled.
func (s *Site) adjust(ctx context.Context, id domain.ID, contentType domain.ContentType) (domain.ID, error) {
	s.mu.RLock()
	enabled, current := s.adjustIDs, s.current
	s.mu.RUnlock()
	if !enabled || current == "" || current == domain.LanguageAll {
		return id, nil
	}

	record, err := s.translationRecord(ctx, id, contentType)
	if err != nil || record == nil {
		return id, err
	}
	member, err := s.groupMember(ctx, contentType, record.GroupID, current)
	if err != nil || member == nil {
		return id, err
	}
	return domain.ID(member.ElementID), nil
}

func (s *Site) translationRecord(ctx context.Context, id domain.ID, contentType domain.ContentType) (*TranslationRecord, error) {
	records, _, err := s.translations.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.content_type = ?", string(contentType)).
				Where("?TableAlias.element_id = ?", int64(id)).
				Where("?TableAlias.alternate = ?", false)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "translation", id.String())
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (s *Site) groupMember(ctx context.Context, contentType domain.ContentType, group int64, languageCode string) (*TranslationRecord, error) {
	records, _, err := s.translations.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.content_type = ?", string(contentType)).
				Where("?TableAlias.group_id = ?", group).
				Where("?TableAlias.language_code = ?", languageCode).
				Where("?TableAlias.alternate = ?", false)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "translation", languageCode)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (s *Site) GetActiveLanguages(ctx context.Context) ([]domain.LanguageDescriptor, error) {
	records, _, err := s.languages.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.position ASC").OrderExpr("?TableAlias.code ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "language", "")
	}
	out := make([]domain.LanguageDescriptor, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *Site) GetHiddenLanguages(ctx context.Context) (map[string]struct{}, error) {
	active, err := s.GetActiveLanguages(ctx)
	if err != nil {
		return nil, err
	}
	hidden := make(map[string]struct{})
	for _, lang := range active {
		if lang.IsHidden {
			hidden[lang.Code] = struct{}{}
		}
	}
	return hidden, nil
}

func (s *Site) GetElementLanguage(ctx context.Context, id domain.ID, elementType string) (string, bool, error) {
	records, _, err := s.translations.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.element_type = ?", elementType).
				Where("?TableAlias.element_id = ?", int64(id))
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return "", false, mapRepositoryError(err, "translation", id.String())
	}
	if len(records) == 0 {
		return "", false, nil
	}
	return records[0].LanguageCode, true, nil
}

// GetCurrentLanguage returns the switched language, or the default language
// when nothing has been switched yet.
func (s *Site) GetCurrentLanguage(ctx context.Context) string {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()
	if current != "" {
		return current
	}

	active, err := s.GetActiveLanguages(ctx)
	if err != nil {
		s.logger.Warn("storage.languages.list_failed", "error", err)
		return ""
	}
	for _, lang := range active {
		if lang.IsDefault {
			s.mu.Lock()
			if s.current == "" {
				s.current = lang.Code
			}
			current = s.current
			s.mu.Unlock()
			return current
		}
	}
	return ""
}

func (s *Site) SwitchLanguage(ctx context.Context, code string) error {
	if code != domain.LanguageAll {
		if _, err := s.languages.GetByIdentifier(ctx, code); err != nil {
			mapped := mapRepositoryError(err, "language", code)
			if storage.IsNotFound(mapped) {
				return storage.ErrLanguageUnknown
			}
			return mapped
		}
	}
	s.mu.Lock()
	s.current = code
	s.mu.Unlock()
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

func (s *Site) MenuLocations(ctx context.Context) (map[string]domain.ID, error) {
	records, _, err := s.locations.List(ctx)
	if err != nil {
		return nil, mapRepositoryError(err, "menu_location", "")
	}
	out := make(map[string]domain.ID, len(records))
	for _, record := range records {
		out[record.Location] = domain.ID(record.MenuID)
	}
	return out, nil
}
