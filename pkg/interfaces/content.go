package interfaces

import (
	"context"

	"github.com/goliatone/go-translink/internal/domain"
)

// ContentStore is the source of truth for posts, terms, menus and menu items.
// Implementations return a *NotFoundError style error when the id is unknown;
// the translation services never create or mutate records.
type ContentStore interface {
	GetByID(ctx context.Context, id domain.ID, contentType domain.ContentType) (*domain.ContentItem, error)
	// GetBySlugPath resolves a hierarchical slug path (root first).
	GetBySlugPath(ctx context.Context, contentType domain.ContentType, path []string) (*domain.ContentItem, error)
}
