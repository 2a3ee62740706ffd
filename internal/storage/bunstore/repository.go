package bunstore

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-translink/internal/storage"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	contentNamespace     = "translink_content"
	translationNamespace = "translink_translation"
	languageNamespace    = "translink_language"
	locationNamespace    = "translink_location"
)

// NewContentRepository creates a repository for content records.
func NewContentRepository(db *bun.DB) repository.Repository[*ContentRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ContentRecord]{
		NewRecord: func() *ContentRecord { return &ContentRecord{} },
		GetID: func(r *ContentRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *ContentRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *ContentRecord) string {
			return r.ID.String()
		},
	})
}

// NewTranslationRepository creates a repository for translation records.
func NewTranslationRepository(db *bun.DB) repository.Repository[*TranslationRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TranslationRecord]{
		NewRecord: func() *TranslationRecord { return &TranslationRecord{} },
		GetID: func(r *TranslationRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *TranslationRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *TranslationRecord) string {
			return r.ID.String()
		},
	})
}

// NewLanguageRepository creates a repository for languages keyed by code.
func NewLanguageRepository(db *bun.DB) repository.Repository[*LanguageRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*LanguageRecord]{
		NewRecord: func() *LanguageRecord { return &LanguageRecord{} },
		GetID: func(r *LanguageRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *LanguageRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(r *LanguageRecord) string {
			return r.Code
		},
	})
}

// NewLocationRepository creates a repository for menu locations keyed by
// location name.
func NewLocationRepository(db *bun.DB) repository.Repository[*LocationRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*LocationRecord]{
		NewRecord: func() *LocationRecord { return &LocationRecord{} },
		GetID: func(r *LocationRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *LocationRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "location"
		},
		GetIdentifierValue: func(r *LocationRecord) string {
			return r.Location
		},
	})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &storage.NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func cachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
}
