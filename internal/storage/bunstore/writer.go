package bunstore

import (
	"context"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/identity"
	"github.com/goliatone/go-translink/internal/storage"
)

// PutLanguage inserts or replaces an active language. Position keeps the
// listing order stable.
func (s *Site) PutLanguage(ctx context.Context, lang domain.LanguageDescriptor, position int) error {
	record := toLanguageRecord(lang, position)
	record.ID = identity.LanguageUUID(lang.Code)
	if err := s.upsertLanguage(ctx, record); err != nil {
		return err
	}
	return s.InvalidateCache(ctx)
}

func (s *Site) upsertLanguage(ctx context.Context, record *LanguageRecord) error {
	_, err := s.languageWriter.GetByID(ctx, record.ID.String())
	if err == nil {
		_, err = s.languageWriter.Update(ctx, record)
		return mapRepositoryError(err, "language", record.Code)
	}
	if !storage.IsNotFound(mapRepositoryError(err, "language", record.Code)) {
		return mapRepositoryError(err, "language", record.Code)
	}
	_, err = s.languageWriter.Create(ctx, record)
	return mapRepositoryError(err, "language", record.Code)
}

// PutItem inserts or replaces a content item. A non-zero group also records
// the item in that translation group under its own language, and registers
// the alternate key when the item has one.
func (s *Site) PutItem(ctx context.Context, item domain.ContentItem, group int64) error {
	record := toContentRecord(item)
	record.ID = identity.ContentUUID(item.Type, item.ID)
	if err := s.upsertContent(ctx, record); err != nil {
		return err
	}

	if group != 0 && item.Language != "" {
		elementType := domain.ElementType(item)
		ids := []domain.ID{item.ID}
		if item.AltID != nil {
			ids = append(ids, *item.AltID)
		}
		for _, id := range ids {
			translation := &TranslationRecord{
				ID:           identity.TranslationUUID(elementType, id),
				ElementType:  elementType,
				ElementID:    int64(id),
				ContentType:  string(item.Type),
				GroupID:      group,
				LanguageCode: item.Language,
				Alternate:    id != item.ID,
			}
			if err := s.upsertTranslation(ctx, translation); err != nil {
				return err
			}
		}
	}
	return s.InvalidateCache(ctx)
}

func (s *Site) upsertContent(ctx context.Context, record *ContentRecord) error {
	key := record.ID.String()
	_, err := s.contentWriter.GetByID(ctx, key)
	if err == nil {
		_, err = s.contentWriter.Update(ctx, record)
		return mapRepositoryError(err, record.ContentType, key)
	}
	if !storage.IsNotFound(mapRepositoryError(err, record.ContentType, key)) {
		return mapRepositoryError(err, record.ContentType, key)
	}
	_, err = s.contentWriter.Create(ctx, record)
	return mapRepositoryError(err, record.ContentType, key)
}

func (s *Site) upsertTranslation(ctx context.Context, record *TranslationRecord) error {
	key := record.ID.String()
	_, err := s.translationWriter.GetByID(ctx, key)
	if err == nil {
		_, err = s.translationWriter.Update(ctx, record)
		return mapRepositoryError(err, "translation", key)
	}
	if !storage.IsNotFound(mapRepositoryError(err, "translation", key)) {
		return mapRepositoryError(err, "translation", key)
	}
	_, err = s.translationWriter.Create(ctx, record)
	return mapRepositoryError(err, "translation", key)
}

// PutMenuLocation binds location to menuID.
func (s *Site) PutMenuLocation(ctx context.Context, location string, menuID domain.ID) error {
	record := &LocationRecord{
		ID:       identity.LocationUUID(location),
		Location: location,
		MenuID:   int64(menuID),
	}
	key := record.ID.String()
	_, err := s.locationWriter.GetByID(ctx, key)
	switch {
	case err == nil:
		_, err = s.locationWriter.Update(ctx, record)
	case storage.IsNotFound(mapRepositoryError(err, "menu_location", location)):
		_, err = s.locationWriter.Create(ctx, record)
	}
	if err != nil {
		return mapRepositoryError(err, "menu_location", location)
	}
	return s.InvalidateCache(ctx)
}
