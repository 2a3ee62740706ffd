package domain

import internaldomain "github.com/goliatone/go-translink/internal/domain"

// ID identifies a content record in the host content store.
type ID = internaldomain.ID

// ContentType enumerates the localizable record kinds.
type ContentType = internaldomain.ContentType

const (
	ContentTypePost     = internaldomain.ContentTypePost
	ContentTypeTerm     = internaldomain.ContentTypeTerm
	ContentTypeMenu     = internaldomain.ContentTypeMenu
	ContentTypeMenuItem = internaldomain.ContentTypeMenuItem
)

// LanguageAll disables language filtering when switched to.
const LanguageAll = internaldomain.LanguageAll

type (
	ContentItem        = internaldomain.ContentItem
	LanguageDescriptor = internaldomain.LanguageDescriptor
	TranslationLink    = internaldomain.TranslationLink
	TermTranslation    = internaldomain.TermTranslation
	LocaleInfo         = internaldomain.LocaleInfo
)

// ParseID parses a decimal identifier.
func ParseID(raw string) (ID, error) {
	return internaldomain.ParseID(raw)
}

// GlobalID encodes a relay style opaque id.
func GlobalID(kind string, id ID) string {
	return internaldomain.GlobalID(kind, id)
}
