package fixtures

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
	"github.com/goliatone/go-translink/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownEnvelope is the front matter accepted by LoadMarkdown.
type markdownEnvelope struct {
	ID         int64  `yaml:"id"`
	Type       string `yaml:"type"`
	Title      string `yaml:"title"`
	Slug       string `yaml:"slug"`
	PostType   string `yaml:"post_type"`
	Taxonomy   string `yaml:"taxonomy"`
	Parent     int64  `yaml:"parent"`
	AltID      int64  `yaml:"alt_id"`
	Group      int64  `yaml:"group"`
	DefaultURL string `yaml:"default_url"`
}

// LoadMarkdown walks root inside fsys and turns every markdown file into a
// fixture item. The first directory below root names the item language, so
// en/about.md yields an English item. Slugs default to the file name and
// are always normalized. Without a front matter title the first level one
// heading of the body is used.
func LoadMarkdown(fsys fs.FS, root string) ([]Item, error) {
	if root == "" {
		root = "."
	}
	var items []Item
	err := fs.WalkDir(fsys, root, func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.EqualFold(path.Ext(name), ".md") {
			return nil
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(name, root), "/")
		language, _, ok := strings.Cut(rel, "/")
		if !ok || language == "" {
			return fmt.Errorf("fixtures: %s: markdown files must live under a language directory", name)
		}
		source, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		item, err := parseMarkdownItem(source, language, strings.TrimSuffix(path.Base(name), path.Ext(name)))
		if err != nil {
			return fmt.Errorf("fixtures: %s: %w", name, err)
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func parseMarkdownItem(source []byte, language, fallbackSlug string) (Item, error) {
	var meta markdownEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Item{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.ID <= 0 {
		return Item{}, fmt.Errorf("front matter id is required")
	}

	contentType := domain.ContentTypePost
	if strings.TrimSpace(meta.Type) != "" {
		parsed, ok := domain.ParseContentType(meta.Type)
		if !ok {
			return Item{}, fmt.Errorf("unknown type %q", meta.Type)
		}
		contentType = parsed
	}

	rawSlug := strings.TrimSpace(meta.Slug)
	if rawSlug == "" {
		rawSlug = fallbackSlug
	}
	normalized, err := slug.Normalize(rawSlug)
	if err != nil {
		return Item{}, fmt.Errorf("normalize slug %q: %w", rawSlug, err)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = firstHeading(body)
	}

	item := Item{
		ContentItem: domain.ContentItem{
			ID:         domain.ID(meta.ID),
			Type:       contentType,
			Slug:       normalized,
			Title:      title,
			DefaultURL: strings.TrimSpace(meta.DefaultURL),
			Language:   language,
			PostType:   strings.TrimSpace(meta.PostType),
			Taxonomy:   strings.TrimSpace(meta.Taxonomy),
		},
		Group: meta.Group,
	}
	if meta.Parent > 0 {
		item.ParentID = domain.IDPtr(domain.ID(meta.Parent))
	}
	if meta.AltID > 0 {
		item.AltID = domain.IDPtr(domain.ID(meta.AltID))
	}
	return item, nil
}

func firstHeading(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	doc := goldmark.New().Parser().Parse(text.NewReader(body))
	var title string
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = strings.TrimSpace(string(heading.Text(body)))
		return ast.WalkStop, nil
	})
	return title
}
