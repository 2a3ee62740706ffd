package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/storage"
)

func newTestSite() *Site {
	site := NewSite()
	site.AddLanguage(domain.LanguageDescriptor{Code: "en", Locale: "en_US", IsDefault: true})
	site.AddLanguage(domain.LanguageDescriptor{Code: "fr", Locale: "fr_FR"})
	return site
}

func TestAddLanguageSetsDefaultCurrent(t *testing.T) {
	site := newTestSite()
	if got := site.GetCurrentLanguage(context.Background()); got != "en" {
		t.Fatalf("expected en as current language, got %q", got)
	}
	site.AddLanguage(domain.LanguageDescriptor{Code: "fr", Locale: "fr_CA"})
	langs, _ := site.GetActiveLanguages(context.Background())
	if len(langs) != 2 || langs[1].Locale != "fr_CA" {
		t.Fatalf("expected fr replaced in place, got %+v", langs)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	site := newTestSite()
	_, err := site.GetByID(context.Background(), 1, domain.ContentTypePost)
	if !storage.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestGetByIDReturnsCopy(t *testing.T) {
	site := newTestSite()
	site.AddItem(domain.ContentItem{ID: 1, Type: domain.ContentTypePost, Slug: "about", ParentID: domain.IDPtr(9)}, 0)

	item, err := site.GetByID(context.Background(), 1, domain.ContentTypePost)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	item.Slug = "mutated"
	*item.ParentID = 100

	again, _ := site.GetByID(context.Background(), 1, domain.ContentTypePost)
	if again.Slug != "about" || *again.ParentID != 9 {
		t.Fatalf("stored item was mutated: %+v", again)
	}
}

func TestGetBySlugPathPrefersCurrentLanguage(t *testing.T) {
	ctx := context.Background()
	site := newTestSite()
	site.AddItem(domain.ContentItem{ID: 1, Type: domain.ContentTypePost, Slug: "docs", Language: "en"}, 1)
	site.AddItem(domain.ContentItem{ID: 2, Type: domain.ContentTypePost, Slug: "docs", Language: "fr"}, 1)
	site.AddItem(domain.ContentItem{ID: 3, Type: domain.ContentTypePost, Slug: "intro", Language: "fr", ParentID: domain.IDPtr(2)}, 2)

	item, err := site.GetBySlugPath(ctx, domain.ContentTypePost, []string{"docs"})
	if err != nil || item.ID != 1 {
		t.Fatalf("expected english docs, got %+v (%v)", item, err)
	}

	if err := site.SwitchLanguage(ctx, "fr"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	item, err = site.GetBySlugPath(ctx, domain.ContentTypePost, []string{"docs", "intro"})
	if err != nil || item.ID != 3 {
		t.Fatalf("expected french intro, got %+v (%v)", item, err)
	}

	if _, err := site.GetBySlugPath(ctx, domain.ContentTypePost, []string{"missing"}); !storage.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := site.GetBySlugPath(ctx, domain.ContentTypePost, nil); !storage.IsNotFound(err) {
		t.Fatalf("expected not found for empty path, got %v", err)
	}
}

func TestGetTranslatedID(t *testing.T) {
	ctx := context.Background()
	site := newTestSite()
	site.AddItem(domain.ContentItem{ID: 1, Type: domain.ContentTypePost, Language: "en"}, 10)
	site.AddItem(domain.ContentItem{ID: 2, Type: domain.ContentTypePost, Language: "fr"}, 10)

	id, ok, err := site.GetTranslatedID(ctx, 1, domain.ContentTypePost, "fr")
	if err != nil || !ok || id != 2 {
		t.Fatalf("expected 2, got %d %v %v", id, ok, err)
	}
	for _, code := range []string{"", domain.LanguageAll, "de"} {
		if _, ok, _ := site.GetTranslatedID(ctx, 1, domain.ContentTypePost, code); ok {
			t.Fatalf("expected no translation for %q", code)
		}
	}
	if _, ok, _ := site.GetTranslatedID(ctx, 99, domain.ContentTypePost, "fr"); ok {
		t.Fatalf("expected no translation for unknown id")
	}
}

func TestAdjustIDsRewritesTermLookups(t *testing.T) {
	ctx := context.Background()
	site := newTestSite()
	site.AddItem(domain.ContentItem{ID: 5, Type: domain.ContentTypeMenu, Language: "en", Taxonomy: domain.TaxonomyNavMenu}, 20)
	site.AddItem(domain.ContentItem{ID: 6, Type: domain.ContentTypeMenu, Language: "fr", Taxonomy: domain.TaxonomyNavMenu}, 20)

	if err := site.SwitchLanguage(ctx, "fr"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	id, _, _ := site.GetTranslatedID(ctx, 5, domain.ContentTypeMenu, "en")
	if id != 6 {
		t.Fatalf("expected rewritten id 6, got %d", id)
	}
	item, _ := site.GetByID(ctx, 5, domain.ContentTypeMenu)
	if item.ID != 6 {
		t.Fatalf("expected rewritten item 6, got %d", item.ID)
	}

	site.SetAdjustIDs(ctx, false)
	id, _, _ = site.GetTranslatedID(ctx, 5, domain.ContentTypeMenu, "en")
	if id != 5 {
		t.Fatalf("expected exact id 5, got %d", id)
	}
}

func TestSwitchLanguageValidatesCode(t *testing.T) {
	ctx := context.Background()
	site := newTestSite()
	if err := site.SwitchLanguage(ctx, "it"); !errors.Is(err, storage.ErrLanguageUnknown) {
		t.Fatalf("expected ErrLanguageUnknown, got %v", err)
	}
	if err := site.SwitchLanguage(ctx, domain.LanguageAll); err != nil {
		t.Fatalf("switch to all: %v", err)
	}
}

func TestElementLanguageAndLocations(t *testing.T) {
	ctx := context.Background()
	site := newTestSite()
	menu := domain.ContentItem{ID: 5, Type: domain.ContentTypeMenu, Language: "fr", Taxonomy: domain.TaxonomyNavMenu, AltID: domain.IDPtr(50)}
	site.AddItem(menu, 20)
	site.AssignMenuLocation("primary", 5)
	site.HideLanguage("fr")

	for _, id := range []domain.ID{5, 50} {
		lang, ok, err := site.GetElementLanguage(ctx, id, "tax_nav_menu")
		if err != nil || !ok || lang != "fr" {
			t.Fatalf("expected fr for %d, got %q %v %v", id, lang, ok, err)
		}
	}

	locations, _ := site.MenuLocations(ctx)
	locations["primary"] = 99
	again, _ := site.MenuLocations(ctx)
	if again["primary"] != 5 {
		t.Fatalf("locations map leaked: %+v", again)
	}

	hidden, _ := site.GetHiddenLanguages(ctx)
	if _, ok := hidden["fr"]; !ok {
		t.Fatalf("expected fr hidden, got %+v", hidden)
	}
}
