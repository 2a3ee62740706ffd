package fixtures_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/fixtures"
	"github.com/goliatone/go-translink/internal/storage/bunstore"
	"github.com/goliatone/go-translink/internal/storage/memory"
	"github.com/goliatone/go-translink/internal/translations"
	"github.com/goliatone/go-translink/pkg/testsupport"
)

func TestLoadFileAndApplyToMemorySite(t *testing.T) {
	ctx := context.Background()
	fixture, err := fixtures.LoadFile("testdata/site.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(fixture.Languages) != 3 || len(fixture.Items) != 9 {
		t.Fatalf("unexpected fixture shape: %d languages %d items", len(fixture.Languages), len(fixture.Items))
	}

	site := memory.NewSite()
	if err := fixtures.Apply(ctx, fixture, site); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := site.GetCurrentLanguage(ctx); got != "en" {
		t.Fatalf("expected default language en, got %q", got)
	}
	locations, _ := site.MenuLocations(ctx)
	if locations["primary"] != 7 {
		t.Fatalf("expected primary location bound to 7, got %v", locations)
	}

	svc, err := translations.NewService(site, site)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	about, err := site.GetByID(ctx, 1, domain.ContentTypePost)
	if err != nil {
		t.Fatalf("get about: %v", err)
	}
	links, err := svc.ListTranslations(ctx, *about)
	if err != nil {
		t.Fatalf("list translations: %v", err)
	}
	var want []domain.TranslationLink
	if err := testsupport.LoadGolden("testdata/about_translations.golden.json", &want); err != nil {
		t.Fatalf("load golden: %v", err)
	}
	if len(links) != len(want) {
		t.Fatalf("expected %d translations, got %+v", len(want), links)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Fatalf("translation %d: expected %+v, got %+v", i, want[i], links[i])
		}
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	_, err := fixtures.LoadFile("testdata/invalid.json")
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, fixtures.ErrFixtureInvalid) {
		t.Fatalf("expected ErrFixtureInvalid, got %v", err)
	}
	issues := fixtures.Issues(err)
	if len(issues) == 0 {
		t.Fatalf("expected issues, got none")
	}
	var sawItems bool
	for _, issue := range issues {
		if strings.HasPrefix(issue.Location, "/items/0") {
			sawItems = true
		}
	}
	if !sawItems {
		t.Fatalf("expected an issue under /items/0, got %+v", issues)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := fixtures.Load(strings.NewReader("{"))
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if errors.Is(err, fixtures.ErrFixtureInvalid) {
		t.Fatalf("decode failures should not be reported as validation issues: %v", err)
	}
}

func TestValidateReferentialRules(t *testing.T) {
	fixture := &fixtures.Fixture{
		Languages: []domain.LanguageDescriptor{
			{Code: "en", Locale: "en_US", IsDefault: true},
			{Code: "en", Locale: "en_GB", IsDefault: true},
		},
		Items: []fixtures.Item{
			{ContentItem: domain.ContentItem{ID: 1, Type: domain.ContentTypePost, Language: "xx"}},
			{ContentItem: domain.ContentItem{ID: 1, Type: domain.ContentTypePost}},
			{ContentItem: domain.ContentItem{ID: 2, Type: domain.ContentTypePost, ParentID: domain.IDPtr(99)}},
		},
		MenuLocations: map[string]domain.ID{"primary": 7},
	}
	err := fixture.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	want := []string{
		"/languages/1/code",
		"/languages",
		"/items/0/language",
		"/items/1/id",
		"/items/2/parent_id",
		"/menu_locations/primary",
	}
	issues := fixtures.Issues(err)
	if len(issues) != len(want) {
		t.Fatalf("expected %d issues, got %+v", len(want), issues)
	}
	for i, location := range want {
		if issues[i].Location != location {
			t.Fatalf("issue %d: expected %s, got %s", i, location, issues[i].Location)
		}
	}
}

func TestApplyRequiresSink(t *testing.T) {
	if err := fixtures.Apply(context.Background(), &fixtures.Fixture{}, nil); !errors.Is(err, fixtures.ErrSinkRequired) {
		t.Fatalf("expected ErrSinkRequired, got %v", err)
	}
}

func TestApplyToBunSite(t *testing.T) {
	ctx := context.Background()
	db, err := testsupport.NewBunSQLiteDB()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	bunstore.RegisterModels(db)
	if err := bunstore.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("schema: %v", err)
	}
	site := bunstore.NewSite(db)

	fixture, err := fixtures.LoadFile("testdata/site.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := fixtures.Apply(ctx, fixture, site); err != nil {
		t.Fatalf("apply: %v", err)
	}

	langs, err := site.GetActiveLanguages(ctx)
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	if len(langs) != 3 || langs[0].Code != "en" || langs[2].Code != "de" {
		t.Fatalf("expected languages in fixture order, got %+v", langs)
	}
	id, ok, err := site.GetTranslatedID(ctx, 1, domain.ContentTypePost, "fr")
	if err != nil || !ok || id != 42 {
		t.Fatalf("expected fr counterpart 42, got %d %v %v", id, ok, err)
	}
}

func TestLoadMarkdown(t *testing.T) {
	items, err := fixtures.LoadMarkdown(os.DirFS("testdata"), "site")
	if err != nil {
		t.Fatalf("load markdown: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	byID := make(map[domain.ID]fixtures.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	about := byID[1]
	if about.Language != "en" || about.Slug != "about" || about.Group != 100 || about.Type != domain.ContentTypePost {
		t.Fatalf("unexpected about item: %+v", about)
	}
	team := byID[43]
	if team.Language != "fr" || team.Slug != "equipe" || team.Title != "L'équipe" {
		t.Fatalf("unexpected team item: %+v", team)
	}
	if !team.HasParent() || *team.ParentID != 42 {
		t.Fatalf("expected team parent 42, got %+v", team.ParentID)
	}
	if team.Group != 0 {
		t.Fatalf("expected ungrouped team item, got %d", team.Group)
	}
}

func TestLoadMarkdownRequiresLanguageDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/stray.md", []byte("---\nid: 1\n---\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := fixtures.LoadMarkdown(os.DirFS(dir), "."); err == nil {
		t.Fatalf("expected error for markdown outside a language directory")
	}
}
