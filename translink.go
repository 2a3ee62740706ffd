package translink

import (
	"context"
	"strings"

	"github.com/goliatone/go-translink/internal/commands/cachecmd"
	"github.com/goliatone/go-translink/internal/commands/fixturecmd"
	"github.com/goliatone/go-translink/internal/di"
	"github.com/goliatone/go-translink/internal/fixtures"
	"github.com/goliatone/go-translink/internal/graphqlfields"
	"github.com/goliatone/go-translink/internal/languages"
	"github.com/goliatone/go-translink/internal/menus"
	"github.com/goliatone/go-translink/internal/query"
	"github.com/goliatone/go-translink/internal/translations"
	"github.com/goliatone/go-translink/pkg/interfaces"
)

// TranslationService exports the translation resolver contract.
type TranslationService = translations.Service

// LanguageService exports the active language listing contract.
type LanguageService = languages.Service

// MenuService exports the menu location contract.
type MenuService = menus.Service

// QueryFilter exports the collection query filter.
type QueryFilter = query.Filter

// QueryArgs exports the collection query arguments.
type QueryArgs = query.Args

// FieldResolver exports the field resolver keyed by field name.
type FieldResolver = graphqlfields.Resolver

// Fixture exports the fixture document type.
type Fixture = fixtures.Fixture

// Option mutates the dependency container before services are built.
type Option = di.Option

var (
	WithBunDB           = di.WithBunDB
	WithCache           = di.WithCache
	WithLoggerProvider  = di.WithLoggerProvider
	WithStorage         = di.WithStorage
	WithLinkFilter      = di.WithLinkFilter
	WithHomeURLResolver = di.WithHomeURLResolver
)

// Module represents the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Translations returns the translation resolver.
func (m *Module) Translations() TranslationService {
	return m.container.TranslationService()
}

// Languages returns the language listing service.
func (m *Module) Languages() LanguageService {
	return m.container.LanguageService()
}

// Menus returns the menu location service.
func (m *Module) Menus() MenuService {
	return m.container.MenuService()
}

// Query returns the collection query filter.
func (m *Module) Query() *QueryFilter {
	return m.container.QueryFilter()
}

// Fields returns the field resolver.
func (m *Module) Fields() *FieldResolver {
	return m.container.FieldResolver()
}

func (m *Module) ContentStore() interfaces.ContentStore {
	return m.container.ContentStore()
}

func (m *Module) TranslationIndex() interfaces.TranslationIndex {
	return m.container.TranslationIndex()
}

// EnsureSchema creates storage tables when SQL storage is configured.
func (m *Module) EnsureSchema(ctx context.Context) error {
	return m.container.EnsureSchema(ctx)
}

// ImportFixture loads the JSON fixture at path, plus markdown items under
// markdownDir when set, into the configured storage.
func (m *Module) ImportFixture(ctx context.Context, path, markdownDir string) error {
	return m.container.ImportFixtureHandler().Execute(ctx, fixturecmd.ImportFixtureCommand{
		Path:        strings.TrimSpace(path),
		MarkdownDir: strings.TrimSpace(markdownDir),
	})
}

// InvalidateCache drops cached storage reads.
func (m *Module) InvalidateCache(ctx context.Context, reason string) error {
	return m.container.InvalidateCacheHandler().Execute(ctx, cachecmd.InvalidateCacheCommand{Reason: reason})
}

// Close releases resources the module opened itself.
func (m *Module) Close() error {
	return m.container.Close()
}
