package domain

import (
	"strconv"
	"strings"
)

// ID identifies a content record in the host content store.
type ID int64

// String renders the decimal form used by storage keys and global ids.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID parses a decimal identifier. Surrounding whitespace is ignored.
func ParseID(raw string) (ID, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(value), nil
}

// IDPtr returns a pointer to id, handy for optional parent links.
func IDPtr(id ID) *ID {
	return &id
}

// LanguageAll is the pseudo language code that disables language filtering.
const LanguageAll = "all"

// ContentItem represents one localizable unit owned by the content store.
type ContentItem struct {
	ID         ID          `json:"id"`
	Type       ContentType `json:"type"`
	Slug       string      `json:"slug"`
	Title      string      `json:"title"`
	DefaultURL string      `json:"default_url,omitempty"`
	ParentID   *ID         `json:"parent_id,omitempty"`
	// Language is the code of the item's own language when known.
	Language string `json:"language,omitempty"`
	// PostType applies to posts (page, post, ...).
	PostType string `json:"post_type,omitempty"`
	// Taxonomy applies to terms and menus (category, post_tag, nav_menu).
	Taxonomy string `json:"taxonomy,omitempty"`
	// AltID is a secondary key some translation indexes register terms under.
	AltID *ID `json:"alt_id,omitempty"`
}

// HasParent reports whether the item links to an ancestor.
func (c ContentItem) HasParent() bool {
	return c.ParentID != nil && *c.ParentID != 0
}

// LanguageDescriptor is an immutable snapshot of one configured language.
type LanguageDescriptor struct {
	Code           string  `json:"code"`
	Locale         string  `json:"default_locale"`
	NativeName     string  `json:"native_name"`
	TranslatedName string  `json:"translated_name"`
	IsDefault      bool    `json:"is_default"`
	IsHidden       bool    `json:"is_hidden"`
	BaseURL        *string `json:"url,omitempty"`
	// HomeURL is the language root used when a canonical URL is built from slugs.
	HomeURL string `json:"home_url,omitempty"`
}

// TranslationLink points at a sibling translation of a content item.
type TranslationLink struct {
	Locale    string `json:"locale"`
	ContentID ID     `json:"id"`
	Title     string `json:"post_title"`
	Href      string `json:"href"`
}

// TermTranslation is the taxonomy flavour of TranslationLink.
type TermTranslation struct {
	ID         string `json:"id"`
	DatabaseID ID     `json:"databaseId"`
	Href       string `json:"href"`
	Locale     string `json:"locale"`
	Name       string `json:"name"`
}

// LocaleInfo is the locale projection exposed for a content item.
type LocaleInfo struct {
	ID     *string `json:"id"`
	Locale *string `json:"locale"`
}

// ProjectLocaleInfo maps a language descriptor onto LocaleInfo. A nil result
// means the item has no language information, which callers must keep
// distinct from a descriptor carrying an empty locale.
func ProjectLocaleInfo(language *LanguageDescriptor, includeLocale bool) *LocaleInfo {
	if language == nil || language.Locale == "" {
		return nil
	}
	id := language.Locale
	info := &LocaleInfo{ID: &id}
	if includeLocale {
		locale := language.Locale
		info.Locale = &locale
	}
	return info
}
