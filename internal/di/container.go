package di

import (
	"context"
	"errors"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-translink/internal/commands"
	"github.com/goliatone/go-translink/internal/commands/cachecmd"
	"github.com/goliatone/go-translink/internal/commands/fixturecmd"
	"github.com/goliatone/go-translink/internal/fixtures"
	"github.com/goliatone/go-translink/internal/graphqlfields"
	"github.com/goliatone/go-translink/internal/languages"
	"github.com/goliatone/go-translink/internal/links"
	"github.com/goliatone/go-translink/internal/logging"
	"github.com/goliatone/go-translink/internal/logging/gologger"
	"github.com/goliatone/go-translink/internal/menus"
	"github.com/goliatone/go-translink/internal/query"
	"github.com/goliatone/go-translink/internal/runtimeconfig"
	"github.com/goliatone/go-translink/internal/storage/bunstore"
	"github.com/goliatone/go-translink/internal/storage/memory"
	"github.com/goliatone/go-translink/internal/translations"
	"github.com/goliatone/go-translink/pkg/interfaces"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"
)

// ErrStorageIncomplete is returned when only part of a custom storage
// binding is supplied.
var ErrStorageIncomplete = errors.New("di: custom storage requires both a content store and a translation index")

// Site is the combined storage contract both adapters satisfy.
type Site interface {
	interfaces.ContentStore
	interfaces.TranslationIndex
	interfaces.MenuLocationStore
	fixtures.Sink
}

// Container wires module dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	store     interfaces.ContentStore
	index     interfaces.TranslationIndex
	locations interfaces.MenuLocationStore
	sink      fixtures.Sink
	bunSite   *bunstore.Site

	routeManager *urlkit.RouteManager
	linkFilter   interfaces.LinkFilter
	homeURLs     interfaces.HomeURLResolver

	languageSvc    languages.Service
	translationSvc translations.Service
	menuSvc        menus.Service
	queryFilter    *query.Filter
	fieldResolver  *graphqlfields.Resolver

	invalidateHandler *cachecmd.InvalidateCacheHandler
	importHandler     *fixturecmd.ImportFixtureHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds an existing database handle. The container never closes it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider derived from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithStorage binds host storage in place of the configured adapter. The
// location store is optional.
func WithStorage(store interfaces.ContentStore, index interfaces.TranslationIndex, locations interfaces.MenuLocationStore) Option {
	return func(c *Container) {
		c.store = store
		c.index = index
		c.locations = locations
	}
}

// WithLinkFilter overrides the link filter derived from the links config.
func WithLinkFilter(filter interfaces.LinkFilter) Option {
	return func(c *Container) {
		c.linkFilter = filter
	}
}

// WithHomeURLResolver overrides the home URL resolver derived from the links config.
func WithHomeURLResolver(resolver interfaces.HomeURLResolver) Option {
	return func(c *Container) {
		c.homeURLs = resolver
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureLinks()
	if err := c.configureServices(); err != nil {
		return nil, err
	}
	c.configureCommands()
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStorage() error {
	if c.store != nil || c.index != nil {
		if c.store == nil || c.index == nil {
			return ErrStorageIncomplete
		}
		if sink, ok := c.store.(fixtures.Sink); ok {
			c.sink = sink
		}
		return nil
	}

	if c.bunDB == nil && strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), runtimeconfig.StorageBun) {
		db, err := bunstore.Open(c.Config.Storage.Dialect, c.Config.Storage.DSN)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	if c.bunDB != nil {
		bunstore.RegisterModels(c.bunDB)
		siteOpts := []bunstore.Option{
			bunstore.WithLogger(logging.StorageLogger(c.loggerProvider)),
		}
		if c.cacheService != nil {
			siteOpts = append(siteOpts, bunstore.WithCache(c.cacheService, c.keySerializer))
		}
		site := bunstore.NewSite(c.bunDB, siteOpts...)
		c.bunSite = site
		c.bindSite(site)
		return nil
	}

	c.bindSite(memory.NewSite())
	return nil
}

func (c *Container) bindSite(site Site) {
	c.store = site
	c.index = site
	c.locations = site
	c.sink = site
}

func (c *Container) configureLinks() {
	linksCfg := c.Config.Links
	if linksCfg.RouteConfig != nil && (c.linkFilter == nil || c.homeURLs == nil) {
		manager := urlkit.NewRouteManager(linksCfg.RouteConfig)
		c.routeManager = manager

		resolver := links.NewURLKitResolver(links.URLKitResolverOptions{
			Manager:        manager,
			DefaultGroup:   strings.TrimSpace(linksCfg.DefaultGroup),
			LanguageGroups: linksCfg.LanguageGroups,
			HomeRoute:      strings.TrimSpace(linksCfg.HomeRoute),
			LanguageParam:  strings.TrimSpace(linksCfg.LanguageParam),
			Logger:         logging.ModuleLogger(c.loggerProvider, "translink.links"),
		})
		if c.linkFilter == nil {
			c.linkFilter = resolver
		}
		if c.homeURLs == nil {
			c.homeURLs = resolver
		}
	}
	if c.linkFilter == nil {
		c.linkFilter = links.PassthroughFilter{}
	}
	if c.homeURLs == nil {
		c.homeURLs = links.StaticHomeURLs(nil)
	}
}

func (c *Container) configureServices() error {
	c.languageSvc = languages.NewService(c.index,
		languages.WithLogger(logging.ModuleLogger(c.loggerProvider, "translink.languages")),
	)

	translationSvc, err := translations.NewService(c.store, c.index,
		translations.WithLogger(logging.TranslationsLogger(c.loggerProvider)),
		translations.WithLinkFilter(c.linkFilter),
		translations.WithHomeURLResolver(c.homeURLs),
	)
	if err != nil {
		return err
	}
	c.translationSvc = translationSvc

	policy, err := menus.ParseDedupPolicy(c.Config.Menus.DedupLocations)
	if err != nil {
		return err
	}
	menuOpts := []menus.ServiceOption{
		menus.WithLogger(logging.MenusLogger(c.loggerProvider)),
		menus.WithDedupPolicy(policy),
	}
	if c.locations != nil {
		menuOpts = append(menuOpts, menus.WithLocationStore(c.locations))
	}
	menuSvc, err := menus.NewService(c.store, c.index, menuOpts...)
	if err != nil {
		return err
	}
	c.menuSvc = menuSvc

	filterOpts := []query.FilterOption{query.WithLogger(logging.QueryLogger(c.loggerProvider))}
	if taxonomies := c.Config.Query.SwitchAllTaxonomies; taxonomies != nil {
		filterOpts = append(filterOpts, query.WithSwitchAllTaxonomies(taxonomies...))
	}
	filter, err := query.NewFilter(c.index, filterOpts...)
	if err != nil {
		return err
	}
	c.queryFilter = filter

	c.fieldResolver = graphqlfields.NewResolver(c.translationSvc, c.languageSvc, c.menuSvc)
	return nil
}

func (c *Container) configureCommands() {
	var invalidator cachecmd.Invalidator
	if c.bunSite != nil {
		invalidator = c.bunSite
	}
	c.invalidateHandler = cachecmd.NewInvalidateCacheHandler(
		invalidator,
		commands.CommandLogger(c.loggerProvider, "cache"),
		cachecmd.FeatureGates{CacheEnabled: func() bool { return c.Config.Cache.Enabled && c.bunSite != nil }},
	)

	var fixtureInvalidator fixturecmd.Invalidator
	if c.bunSite != nil {
		fixtureInvalidator = c.bunSite
	}
	c.importHandler = fixturecmd.NewImportFixtureHandler(fixturecmd.HandlerConfig{
		Sink:        c.sink,
		Invalidator: fixtureInvalidator,
		Logger:      commands.CommandLogger(c.loggerProvider, "fixtures"),
		Gates:       fixturecmd.FeatureGates{CommandsEnabled: func() bool { return c.Config.Features.Commands }},
	})
}

// EnsureSchema creates the bun tables when SQL storage is configured.
func (c *Container) EnsureSchema(ctx context.Context) error {
	if c.bunDB == nil {
		return nil
	}
	return bunstore.EnsureSchema(ctx, c.bunDB)
}

// Close releases the database handle when the container opened it.
func (c *Container) Close() error {
	if c.bunDB != nil && c.ownsDB {
		return c.bunDB.Close()
	}
	return nil
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) ContentStore() interfaces.ContentStore {
	return c.store
}

func (c *Container) TranslationIndex() interfaces.TranslationIndex {
	return c.index
}

func (c *Container) MenuLocationStore() interfaces.MenuLocationStore {
	return c.locations
}

// FixtureSink returns the storage writer, nil when custom storage cannot be written.
func (c *Container) FixtureSink() fixtures.Sink {
	return c.sink
}

func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

func (c *Container) LinkFilter() interfaces.LinkFilter {
	return c.linkFilter
}

func (c *Container) HomeURLResolver() interfaces.HomeURLResolver {
	return c.homeURLs
}

func (c *Container) LanguageService() languages.Service {
	return c.languageSvc
}

func (c *Container) TranslationService() translations.Service {
	return c.translationSvc
}

func (c *Container) MenuService() menus.Service {
	return c.menuSvc
}

func (c *Container) QueryFilter() *query.Filter {
	return c.queryFilter
}

func (c *Container) FieldResolver() *graphqlfields.Resolver {
	return c.fieldResolver
}

func (c *Container) InvalidateCacheHandler() *cachecmd.InvalidateCacheHandler {
	return c.invalidateHandler
}

func (c *Container) ImportFixtureHandler() *fixturecmd.ImportFixtureHandler {
	return c.importHandler
}
