package links

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/logging"
	"github.com/goliatone/go-translink/pkg/interfaces"
	urlkit "github.com/goliatone/go-urlkit"
)

// URLKitResolverOptions configures the go-urlkit backed resolver.
type URLKitResolverOptions struct {
	Manager        *urlkit.RouteManager
	DefaultGroup   string
	LanguageGroups map[string]string
	HomeRoute      string
	LanguageParam  string
	Logger         interfaces.Logger
}

// URLKitResolver builds language root URLs from go-urlkit route groups and
// qualifies relative base URLs against them. Each language maps to a group
// path such as "frontend.fr"; languages without a mapping use the default
// group.
type URLKitResolver struct {
	manager *urlkit.RouteManager

	defaultGroup   string
	languageGroups map[string]string
	homeRoute      string
	languageParam  string
	logger         interfaces.Logger

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

var (
	_ interfaces.LinkFilter      = (*URLKitResolver)(nil)
	_ interfaces.HomeURLResolver = (*URLKitResolver)(nil)
)

// NewURLKitResolver constructs a resolver backed by go-urlkit.
func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	if strings.TrimSpace(opts.HomeRoute) == "" {
		opts.HomeRoute = "home"
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOp()
	}

	groups := make(map[string]string, len(opts.LanguageGroups))
	for code, path := range opts.LanguageGroups {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" || strings.TrimSpace(path) == "" {
			continue
		}
		groups[code] = strings.TrimSpace(path)
	}

	return &URLKitResolver{
		manager:        opts.Manager,
		defaultGroup:   strings.TrimSpace(opts.DefaultGroup),
		languageGroups: groups,
		homeRoute:      strings.TrimSpace(opts.HomeRoute),
		languageParam:  strings.TrimSpace(opts.LanguageParam),
		logger:         opts.Logger,
		groupCache:     make(map[string]*urlkit.Group),
	}
}

// HomeURL returns the root URL of language. When no route group can build
// it the descriptor's HomeURL is returned.
func (r *URLKitResolver) HomeURL(_ context.Context, language domain.LanguageDescriptor) string {
	if r == nil || r.manager == nil {
		return language.HomeURL
	}
	home, err := r.build(language)
	if err != nil {
		r.logger.Debug("links.home.fallback", "language", language.Code, "error", err)
		return language.HomeURL
	}
	if home == "" {
		return language.HomeURL
	}
	return home
}

// FilterLink leaves absolute URLs untouched and qualifies relative ones with
// the scheme and host of the language root URL.
func (r *URLKitResolver) FilterLink(ctx context.Context, baseURL string, language domain.LanguageDescriptor) string {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.IsAbs() {
		return trimmed
	}

	home, err := url.Parse(r.HomeURL(ctx, language))
	if err != nil || home.Scheme == "" || home.Host == "" {
		return trimmed
	}
	return home.Scheme + "://" + home.Host + "/" + strings.TrimLeft(trimmed, "/")
}

func (r *URLKitResolver) build(language domain.LanguageDescriptor) (string, error) {
	groupPath := r.defaultGroup
	if path, ok := r.languageGroups[strings.ToLower(strings.TrimSpace(language.Code))]; ok {
		groupPath = path
	}
	if groupPath == "" {
		return "", nil
	}

	group, err := r.groupForPath(groupPath)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, r.homeRoute)
	if err != nil {
		return "", err
	}
	if r.languageParam != "" && language.Code != "" {
		builder.WithParam(r.languageParam, language.Code)
	}
	return builder.Build()
}

func (r *URLKitResolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	current, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("links: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("links: urlkit route %q: %v", route, rec)
		}
	}()
	return group.Builder(route), nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("links: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("links: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	if group == nil {
		return nil, fmt.Errorf("links: route group %q not found", name)
	}
	return group, nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("links: route group %q not found", name)
		}
	}()
	group = parent.Group(name)
	if group == nil {
		return nil, fmt.Errorf("links: route group %q not found", name)
	}
	return group, nil
}
