package links

import (
	"context"
	"strings"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/pkg/interfaces"
)

// PassthroughFilter returns base URLs unchanged.
type PassthroughFilter struct{}

var _ interfaces.LinkFilter = PassthroughFilter{}

func (PassthroughFilter) FilterLink(_ context.Context, baseURL string, _ domain.LanguageDescriptor) string {
	return baseURL
}

// StaticHomeURLs maps language codes to fixed root URLs.
type StaticHomeURLs map[string]string

var _ interfaces.HomeURLResolver = StaticHomeURLs(nil)

// HomeURL returns the configured root for language, falling back to the
// descriptor's own HomeURL.
func (s StaticHomeURLs) HomeURL(_ context.Context, language domain.LanguageDescriptor) string {
	if home := strings.TrimSpace(s[language.Code]); home != "" {
		return home
	}
	return language.HomeURL
}
