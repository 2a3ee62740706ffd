package identity

import (
	"strings"

	"github.com/goliatone/go-translink/internal/domain"
	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Keys must carry a type prefix so rows of different tables never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ContentUUID is the row id of a content item.
func ContentUUID(contentType domain.ContentType, id domain.ID) uuid.UUID {
	return UUID("translink:content:" + string(contentType) + ":" + id.String())
}

// TranslationUUID is the row id of a translation index record.
func TranslationUUID(elementType string, id domain.ID) uuid.UUID {
	return UUID("translink:translation:" + strings.TrimSpace(elementType) + ":" + id.String())
}

// LanguageUUID is the row id of an active language.
func LanguageUUID(code string) uuid.UUID {
	return UUID("translink:language:" + strings.ToLower(strings.TrimSpace(code)))
}

// LocationUUID is the row id of a theme location binding.
func LocationUUID(location string) uuid.UUID {
	return UUID("translink:location:" + strings.TrimSpace(location))
}
