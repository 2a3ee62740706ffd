package memory

import (
	"context"

	"github.com/goliatone/go-translink/internal/domain"
)

// PutLanguage registers lang. Position is accepted for parity with the SQL
// store; the memory site keeps insertion order.
func (s *Site) PutLanguage(_ context.Context, lang domain.LanguageDescriptor, _ int) error {
	s.AddLanguage(lang)
	return nil
}

func (s *Site) PutItem(_ context.Context, item domain.ContentItem, group int64) error {
	s.AddItem(item, group)
	return nil
}

func (s *Site) PutMenuLocation(_ context.Context, location string, menuID domain.ID) error {
	s.AssignMenuLocation(location, menuID)
	return nil
}
