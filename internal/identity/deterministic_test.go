package identity

import (
	"testing"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := UUID("translink:content:post:1")
	second := UUID("  translink:content:post:1 ")
	if first == uuid.Nil || first != second {
		t.Fatalf("expected stable non-nil uuid, got %s and %s", first, second)
	}
	if UUID("") != uuid.Nil {
		t.Fatalf("expected nil uuid for empty key")
	}
}

func TestKeysAreTypePrefixed(t *testing.T) {
	post := ContentUUID(domain.ContentTypePost, 7)
	term := ContentUUID(domain.ContentTypeTerm, 7)
	if post == term {
		t.Fatalf("content types must not collide")
	}
	if TranslationUUID("post_page", 7) == post {
		t.Fatalf("translation rows must not collide with content rows")
	}
	if LanguageUUID("FR") != LanguageUUID("fr") {
		t.Fatalf("language ids should ignore case")
	}
	if LocationUUID("primary") == LocationUUID("footer") {
		t.Fatalf("locations must differ")
	}
}
