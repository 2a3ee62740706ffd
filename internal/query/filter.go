package query

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/languages"
	"github.com/goliatone/go-translink/internal/logging"
	"github.com/goliatone/go-translink/pkg/interfaces"
)

// Connection field names that accept a language argument.
const (
	FieldMenus     = "menus"
	FieldMenuItems = "menuItems"
)

const fieldsIDs = "ids"

var ErrIndexRequired = errors.New("query: translation index is required")

// Args is the subset of collection query arguments the language layer
// inspects or rewrites.
type Args struct {
	PostTypes []string
	Fields    string
	Taxonomy  string
	Include   []domain.ID
	TaxQuery  map[string]any
	Language  string
	// Where holds the arguments the API caller supplied.
	Where map[string]any

	// SuppressLanguageFilter asks the store to skip its own language
	// where/join clauses.
	SuppressLanguageFilter bool
	// TranslateLocations asks the caller to map theme locations onto the
	// menus of the switched language.
	TranslateLocations bool
}

func (a Args) clone() Args {
	out := a
	out.PostTypes = slices.Clone(a.PostTypes)
	out.Include = slices.Clone(a.Include)
	out.TaxQuery = cloneMap(a.TaxQuery)
	out.Where = cloneMap(a.Where)
	return out
}

// Filter rewrites collection queries so they see content in every language
// or in the language the caller asked for.
type Filter struct {
	index     interfaces.TranslationIndex
	switchAll map[string]struct{}
	logger    interfaces.Logger
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithLogger overrides the filter logger.
func WithLogger(logger interfaces.Logger) FilterOption {
	return func(f *Filter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithSwitchAllTaxonomies replaces the taxonomies queried in every language
// at once. The default is category and post_tag.
func WithSwitchAllTaxonomies(taxonomies ...string) FilterOption {
	return func(f *Filter) {
		f.switchAll = make(map[string]struct{}, len(taxonomies))
		for _, taxonomy := range taxonomies {
			if taxonomy = strings.TrimSpace(taxonomy); taxonomy != "" {
				f.switchAll[taxonomy] = struct{}{}
			}
		}
	}
}

// NewFilter constructs a query filter over index.
func NewFilter(index interfaces.TranslationIndex, opts ...FilterOption) (*Filter, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	f := &Filter{
		index: index,
		switchAll: map[string]struct{}{
			domain.TaxonomyCategory: {},
			domain.TaxonomyPostTag:  {},
		},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// PostObjectArgs marks a post connection query so the store does not add
// its own language filter.
func PostObjectArgs(args Args) Args {
	out := args.clone()
	out.SuppressLanguageFilter = true
	return out
}

// Prepare rewrites args and performs any language switch the query needs.
// The returned Restore must be called once the query has run.
func (f *Filter) Prepare(ctx context.Context, args Args) (Args, languages.Restore, error) {
	out := args.clone()
	var restores []languages.Restore

	if isMenuItemIDQuery(out) {
		out.TaxQuery = nil
	}

	if out.Taxonomy == domain.TaxonomyNavMenu {
		if len(out.Include) > 0 && !hasIDQuery(out.Where) {
			out.Include = nil
		}
		if code := strings.TrimSpace(out.Language); code != "" && code != f.index.GetCurrentLanguage(ctx) {
			if restore, ok := f.switchTo(ctx, code); ok {
				restores = append(restores, restore)
				out.TranslateLocations = true
			}
		}
	}

	if _, ok := f.switchAll[out.Taxonomy]; ok {
		if restore, ok := f.switchTo(ctx, domain.LanguageAll); ok {
			restores = append(restores, restore)
		}
	}

	return out, languages.Chain(restores...), nil
}

// PrepareConnection consumes the language argument of the menus and
// menuItems connections, switching language when it differs from the
// current one. Other fields and malformed arguments pass through untouched.
func (f *Filter) PrepareConnection(ctx context.Context, field string, where map[string]any) (map[string]any, languages.Restore, error) {
	out := cloneMap(where)
	if field != FieldMenus && field != FieldMenuItems {
		return out, languages.Chain(), nil
	}
	raw, ok := out["language"]
	if !ok {
		return out, languages.Chain(), nil
	}
	code, ok := raw.(string)
	if !ok {
		f.logger.WithContext(ctx).Debug("query.connection.language_ignored", "field", field)
		return out, languages.Chain(), nil
	}
	delete(out, "language")

	code = strings.TrimSpace(code)
	if code == "" || code == f.index.GetCurrentLanguage(ctx) {
		return out, languages.Chain(), nil
	}
	restore, switched := f.switchTo(ctx, code)
	if !switched {
		return out, languages.Chain(), nil
	}
	return out, restore, nil
}

// switchTo switches the current language and fails soft on unknown codes.
func (f *Filter) switchTo(ctx context.Context, code string) (languages.Restore, bool) {
	restore, err := languages.SwitchLanguage(ctx, f.index, code)
	if err != nil {
		f.logger.WithContext(ctx).Warn("query.language.switch_failed", "language", code, "error", err)
		return nil, false
	}
	return restore, true
}

func isMenuItemIDQuery(args Args) bool {
	return len(args.PostTypes) == 1 &&
		args.PostTypes[0] == domain.PostTypeMenuItem &&
		args.Fields == fieldsIDs &&
		args.TaxQuery != nil
}

func hasIDQuery(where map[string]any) bool {
	if where == nil {
		return false
	}
	id, ok := where["id"]
	return ok && id != nil
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
