package domain

import "strings"

// ContentType enumerates the localizable record kinds.
type ContentType string

const (
	// ContentTypePost covers posts, pages and custom post types
	ContentTypePost ContentType = "post"
	// ContentTypeTerm covers taxonomy terms
	ContentTypeTerm ContentType = "term"
	// ContentTypeMenu identifies navigation menus (nav_menu terms)
	ContentTypeMenu ContentType = "menu"
	// ContentTypeMenuItem identifies entries inside a navigation menu
	ContentTypeMenuItem ContentType = "menu_item"
)

const (
	TaxonomyNavMenu  = "nav_menu"
	TaxonomyCategory = "category"
	TaxonomyPostTag  = "post_tag"
	PostTypeMenuItem = "nav_menu_item"
)

// ParseContentType coerces arbitrary strings into a known ContentType.
func ParseContentType(raw string) (ContentType, bool) {
	switch ContentType(strings.ToLower(strings.TrimSpace(raw))) {
	case ContentTypePost:
		return ContentTypePost, true
	case ContentTypeTerm:
		return ContentTypeTerm, true
	case ContentTypeMenu:
		return ContentTypeMenu, true
	case ContentTypeMenuItem, "menuitem":
		return ContentTypeMenuItem, true
	default:
		return "", false
	}
}

// IsTermLike reports whether records of this type live in a taxonomy table.
// Translation indexes rewrite ids of term-like records to the current language.
func (t ContentType) IsTermLike() bool {
	return t == ContentTypeTerm || t == ContentTypeMenu
}

// ElementType returns the translation index element type for an item, in
// the post_<type> / tax_<taxonomy> form.
func ElementType(item ContentItem) string {
	switch item.Type {
	case ContentTypePost:
		postType := strings.TrimSpace(item.PostType)
		if postType == "" {
			postType = "post"
		}
		return "post_" + postType
	case ContentTypeMenuItem:
		return "post_" + PostTypeMenuItem
	case ContentTypeMenu:
		return "tax_" + TaxonomyNavMenu
	case ContentTypeTerm:
		taxonomy := strings.TrimSpace(item.Taxonomy)
		if taxonomy == "" {
			taxonomy = TaxonomyCategory
		}
		return "tax_" + taxonomy
	default:
		return string(item.Type)
	}
}
