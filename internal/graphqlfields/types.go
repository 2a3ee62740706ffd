package graphqlfields

import "github.com/goliatone/go-translink/internal/domain"

// LanguageInfo is the payload of the root languages field.
type LanguageInfo struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	NativeName     string  `json:"native_name"`
	TranslatedName string  `json:"translated_name"`
	DefaultLocale  string  `json:"default_locale"`
	IsHidden       bool    `json:"is_hidden"`
	URL            *string `json:"url,omitempty"`
}

func languageInfo(lang domain.LanguageDescriptor) LanguageInfo {
	return LanguageInfo{
		ID:             lang.Code,
		Code:           lang.Code,
		NativeName:     lang.NativeName,
		TranslatedName: lang.TranslatedName,
		DefaultLocale:  lang.Locale,
		IsHidden:       lang.IsHidden,
		URL:            lang.BaseURL,
	}
}

// Source is the object a field is resolved on together with the request
// details a resolver may inspect.
type Source struct {
	Item *domain.ContentItem
	// Selection lists the sub fields requested on the result.
	Selection map[string]bool
	// Current is the value the host already resolved for the field, if any.
	Current any
}

func (s Source) selected(field string) bool {
	return s.Selection != nil && s.Selection[field]
}
