package links_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/links"
	urlkit "github.com/goliatone/go-urlkit"
)

func newManager() *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "frontend",
				BaseURL: "https://example.com",
				Paths: map[string]string{
					"home": "/",
				},
				Groups: []urlkit.GroupConfig{
					{
						Name: "fr",
						Path: "/fr",
						Paths: map[string]string{
							"home": "/",
						},
					},
				},
			},
		},
	})
}

func TestURLKitResolverHomeURL(t *testing.T) {
	resolver := links.NewURLKitResolver(links.URLKitResolverOptions{
		Manager:        newManager(),
		DefaultGroup:   "frontend",
		LanguageGroups: map[string]string{"FR": "frontend.fr"},
	})
	ctx := context.Background()

	fr := resolver.HomeURL(ctx, domain.LanguageDescriptor{Code: "fr"})
	if strings.TrimRight(fr, "/") != "https://example.com/fr" {
		t.Fatalf("unexpected french home url %q", fr)
	}
	en := resolver.HomeURL(ctx, domain.LanguageDescriptor{Code: "en"})
	if strings.TrimRight(en, "/") != "https://example.com" {
		t.Fatalf("unexpected english home url %q", en)
	}
}

func TestURLKitResolverFallsBackToDescriptor(t *testing.T) {
	resolver := links.NewURLKitResolver(links.URLKitResolverOptions{
		Manager:        newManager(),
		DefaultGroup:   "frontend",
		LanguageGroups: map[string]string{"de": "frontend.de"},
	})
	got := resolver.HomeURL(context.Background(), domain.LanguageDescriptor{Code: "de", HomeURL: "https://de.example.com"})
	if got != "https://de.example.com" {
		t.Fatalf("expected descriptor fallback, got %q", got)
	}

	var nilResolver *links.URLKitResolver
	if got := nilResolver.HomeURL(context.Background(), domain.LanguageDescriptor{HomeURL: "x"}); got != "x" {
		t.Fatalf("expected nil resolver fallback, got %q", got)
	}
}

func TestURLKitResolverFilterLink(t *testing.T) {
	resolver := links.NewURLKitResolver(links.URLKitResolverOptions{
		Manager:        newManager(),
		DefaultGroup:   "frontend",
		LanguageGroups: map[string]string{"fr": "frontend.fr"},
	})
	ctx := context.Background()
	fr := domain.LanguageDescriptor{Code: "fr"}

	if got := resolver.FilterLink(ctx, "https://other.example.com/fr/a-propos/", fr); got != "https://other.example.com/fr/a-propos/" {
		t.Fatalf("absolute url should pass through, got %q", got)
	}
	if got := resolver.FilterLink(ctx, "/fr/a-propos/", fr); got != "https://example.com/fr/a-propos/" {
		t.Fatalf("unexpected qualified url %q", got)
	}
	if got := resolver.FilterLink(ctx, "  ", fr); got != "" {
		t.Fatalf("expected empty url, got %q", got)
	}
}

func TestStaticHomeURLsAndPassthrough(t *testing.T) {
	homes := links.StaticHomeURLs{"fr": "https://fr.example.com"}
	ctx := context.Background()
	if got := homes.HomeURL(ctx, domain.LanguageDescriptor{Code: "fr"}); got != "https://fr.example.com" {
		t.Fatalf("unexpected home %q", got)
	}
	if got := homes.HomeURL(ctx, domain.LanguageDescriptor{Code: "de", HomeURL: "https://example.com/de"}); got != "https://example.com/de" {
		t.Fatalf("expected descriptor fallback, got %q", got)
	}
	if got := (links.PassthroughFilter{}).FilterLink(ctx, "/x/", domain.LanguageDescriptor{}); got != "/x/" {
		t.Fatalf("passthrough changed url: %q", got)
	}
}
