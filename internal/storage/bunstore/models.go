package bunstore

import (
	"time"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ContentRecord persists one content item.
type ContentRecord struct {
	bun.BaseModel `bun:"table:translink_content,alias:tc"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ElementID   int64     `bun:"element_id,notnull" json:"element_id"`
	ContentType string    `bun:"content_type,notnull" json:"content_type"`
	Slug        string    `bun:"slug" json:"slug"`
	Title       string    `bun:"title" json:"title"`
	DefaultURL  string    `bun:"default_url" json:"default_url,omitempty"`
	ParentID    *int64    `bun:"parent_id" json:"parent_id,omitempty"`
	Language    string    `bun:"language" json:"language,omitempty"`
	PostType    string    `bun:"post_type" json:"post_type,omitempty"`
	Taxonomy    string    `bun:"taxonomy" json:"taxonomy,omitempty"`
	AltID       *int64    `bun:"alt_id" json:"alt_id,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// TranslationRecord places an element in a translation group under one
// language. ElementType follows the host convention (post_page, tax_category).
type TranslationRecord struct {
	bun.BaseModel `bun:"table:translink_translations,alias:tt"`

	ID           uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ElementType  string    `bun:"element_type,notnull" json:"element_type"`
	ElementID    int64     `bun:"element_id,notnull" json:"element_id"`
	ContentType  string    `bun:"content_type,notnull" json:"content_type"`
	GroupID      int64     `bun:"group_id,notnull" json:"group_id"`
	LanguageCode string    `bun:"language_code,notnull" json:"language_code"`
	// Alternate rows only answer element language lookups.
	Alternate bool      `bun:"alternate,notnull,default:false" json:"alternate"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// LanguageRecord persists an active language.
type LanguageRecord struct {
	bun.BaseModel `bun:"table:translink_languages,alias:tl"`

	ID             uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Code           string    `bun:"code,notnull,unique" json:"code"`
	Locale         string    `bun:"locale" json:"locale"`
	NativeName     string    `bun:"native_name" json:"native_name"`
	TranslatedName string    `bun:"translated_name" json:"translated_name"`
	IsDefault      bool      `bun:"is_default,notnull,default:false" json:"is_default"`
	IsHidden       bool      `bun:"is_hidden,notnull,default:false" json:"is_hidden"`
	URL            *string   `bun:"url" json:"url,omitempty"`
	HomeURL        string    `bun:"home_url" json:"home_url,omitempty"`
	Position       int       `bun:"position,notnull,default:0" json:"position"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// LocationRecord binds a theme location to a menu.
type LocationRecord struct {
	bun.BaseModel `bun:"table:translink_menu_locations,alias:tml"`

	ID       uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Location string    `bun:"location,notnull,unique" json:"location"`
	MenuID   int64     `bun:"menu_id,notnull" json:"menu_id"`
}

// Models lists every table managed by the package.
func Models() []any {
	return []any{
		(*ContentRecord)(nil),
		(*TranslationRecord)(nil),
		(*LanguageRecord)(nil),
		(*LocationRecord)(nil),
	}
}

func toContentRecord(item domain.ContentItem) *ContentRecord {
	record := &ContentRecord{
		ElementID:   int64(item.ID),
		ContentType: string(item.Type),
		Slug:        item.Slug,
		Title:       item.Title,
		DefaultURL:  item.DefaultURL,
		Language:    item.Language,
		PostType:    item.PostType,
		Taxonomy:    item.Taxonomy,
	}
	if item.ParentID != nil {
		parent := int64(*item.ParentID)
		record.ParentID = &parent
	}
	if item.AltID != nil {
		alt := int64(*item.AltID)
		record.AltID = &alt
	}
	return record
}

func (r *ContentRecord) toDomain() *domain.ContentItem {
	item := &domain.ContentItem{
		ID:         domain.ID(r.ElementID),
		Type:       domain.ContentType(r.ContentType),
		Slug:       r.Slug,
		Title:      r.Title,
		DefaultURL: r.DefaultURL,
		Language:   r.Language,
		PostType:   r.PostType,
		Taxonomy:   r.Taxonomy,
	}
	if r.ParentID != nil {
		item.ParentID = domain.IDPtr(domain.ID(*r.ParentID))
	}
	if r.AltID != nil {
		item.AltID = domain.IDPtr(domain.ID(*r.AltID))
	}
	return item
}

func toLanguageRecord(lang domain.LanguageDescriptor, position int) *LanguageRecord {
	return &LanguageRecord{
		Code:           lang.Code,
		Locale:         lang.Locale,
		NativeName:     lang.NativeName,
		TranslatedName: lang.TranslatedName,
		IsDefault:      lang.IsDefault,
		IsHidden:       lang.IsHidden,
		URL:            lang.BaseURL,
		HomeURL:        lang.HomeURL,
		Position:       position,
	}
}

func (r *LanguageRecord) toDomain() domain.LanguageDescriptor {
	return domain.LanguageDescriptor{
		Code:           r.Code,
		Locale:         r.Locale,
		NativeName:     r.NativeName,
		TranslatedName: r.TranslatedName,
		IsDefault:      r.IsDefault,
		IsHidden:       r.IsHidden,
		BaseURL:        r.URL,
		HomeURL:        r.HomeURL,
	}
}
