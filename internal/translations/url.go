package translations

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/languages"
	"github.com/goliatone/go-translink/internal/storage"
)

// ResolveCanonicalURL prefers the filtered language base URL when it already
// names the item's slug. Otherwise the URL is built from the language home
// URL and the slugs of the item's ancestors, root first.
//
// The slug check is a plain substring test and can match unrelated path
// segments; it is kept for compatibility with the host link filters.
//
// Ancestors are loaded with id rewriting suspended so a term parent keeps
// the slug of its own language. When no home URL resolves, item.DefaultURL
// is returned as is: it may carry a query string, so no trailing slash is
// added.
func (s *service) ResolveCanonicalURL(ctx context.Context, item domain.ContentItem, language domain.LanguageDescriptor) (string, error) {
	if filtered, ok := s.filteredBaseURL(ctx, item, language); ok {
		s.logger.WithContext(ctx).Trace("translations.url.filtered", "language", language.Code, "content_id", item.ID.String())
		return filtered, nil
	}

	restore := languages.SuspendAdjustIDs(ctx, s.index)
	segments, err := s.ancestorSlugs(ctx, item)
	restore()
	if err != nil {
		return "", err
	}
	if slug := trimSlug(item.Slug); slug != "" {
		segments = append(segments, slug)
	}

	root := strings.TrimSpace(s.homes.HomeURL(ctx, language))
	if root == "" && item.DefaultURL != "" {
		return item.DefaultURL, nil
	}
	return joinURL(root, segments), nil
}

func (s *service) filteredBaseURL(ctx context.Context, item domain.ContentItem, language domain.LanguageDescriptor) (string, bool) {
	if language.BaseURL == nil {
		return "", false
	}
	filtered := s.links.FilterLink(ctx, *language.BaseURL, language)
	if filtered == "" || item.Slug == "" {
		return "", false
	}
	// a match at offset zero does not count, as in the host plugin
	if strings.Index(filtered, item.Slug) > 0 {
		return filtered, true
	}
	return "", false
}

// ancestorSlugs returns the slugs of item's ancestors ordered root first.
func (s *service) ancestorSlugs(ctx context.Context, item domain.ContentItem) ([]string, error) {
	var reversed []string
	seen := map[domain.ID]struct{}{item.ID: {}}

	current := item
	for current.HasParent() {
		parentID := *current.ParentID
		if _, loop := seen[parentID]; loop {
			return nil, fmt.Errorf("%w: %s %s", ErrHierarchyCycle, item.Type, item.ID)
		}
		seen[parentID] = struct{}{}

		parent, err := s.store.GetByID(ctx, parentID, item.Type)
		if err != nil {
			if storage.IsNotFound(err) {
				return nil, fmt.Errorf("%w: parent %s of %s", ErrContentMissing, parentID, item.ID)
			}
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: parent %s of %s", ErrContentMissing, parentID, item.ID)
		}
		if slug := trimSlug(parent.Slug); slug != "" {
			reversed = append(reversed, slug)
		}
		current = *parent
	}

	segments := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		segments = append(segments, reversed[i])
	}
	return segments, nil
}

func joinURL(root string, segments []string) string {
	root = strings.TrimRight(root, "/")
	if len(segments) == 0 {
		return root + "/"
	}
	return root + "/" + strings.Join(segments, "/") + "/"
}

func trimSlug(slug string) string {
	return strings.Trim(strings.TrimSpace(slug), "/")
}
