package menus

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-translink/internal/domain"
)

// DedupPolicy controls whether repeated ids survive location resolution.
type DedupPolicy int

const (
	// DedupNone keeps every resolved id, repeats included.
	DedupNone DedupPolicy = iota
	// DedupPreserveOrder keeps the first occurrence of each id.
	DedupPreserveOrder
)

func (p DedupPolicy) String() string {
	switch p {
	case DedupPreserveOrder:
		return "preserve_order"
	default:
		return "none"
	}
}

// ParseDedupPolicy reads a policy name as used in configuration.
func ParseDedupPolicy(raw string) (DedupPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		return DedupNone, nil
	case "preserve_order", "preserve-order", "unique":
		return DedupPreserveOrder, nil
	default:
		return DedupNone, fmt.Errorf("menus: unknown dedup policy %q", raw)
	}
}

func (p DedupPolicy) apply(ids []domain.ID) []domain.ID {
	if p != DedupPreserveOrder || len(ids) < 2 {
		return ids
	}
	seen := make(map[domain.ID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
