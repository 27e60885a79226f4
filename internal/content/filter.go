package content

import (
	"path"

	"github.com/jamesprial/confcms-mcp/internal/config"
)

// SlugFilter controls which slugs the MCP tools expose, using glob patterns
// as understood by path.Match.
//
// Rules:
//   - If both lists are empty, every slug is allowed.
//   - The denylist takes priority over the allowlist.
//   - A non-empty allowlist must match for the slug to be allowed.
//
// A nil *SlugFilter allows everything.
type SlugFilter struct {
	allowlist []string
	denylist  []string
}

// NewSlugFilter builds a SlugFilter from configured allow and deny patterns.
func NewSlugFilter(cfg config.SlugFilter) *SlugFilter {
	return &SlugFilter{allowlist: cfg.Allowlist, denylist: cfg.Denylist}
}

// IsAllowed reports whether slug is permitted by this filter.
func (f *SlugFilter) IsAllowed(slug string) bool {
	if f == nil {
		return true
	}
	for _, pattern := range f.denylist {
		if matchGlob(pattern, slug) {
			return false
		}
	}
	if len(f.allowlist) == 0 {
		return true
	}
	for _, pattern := range f.allowlist {
		if matchGlob(pattern, slug) {
			return true
		}
	}
	return false
}

// matchGlob treats malformed patterns as non-matching.
func matchGlob(pattern, name string) bool {
	matched, err := path.Match(pattern, name)
	return err == nil && matched
}

// applyFilter returns the items whose slug f allows, in order.
func applyFilter[T any](items []T, f *SlugFilter, slug func(T) string) []T {
	if f == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if f.IsAllowed(slug(it)) {
			out = append(out, it)
		}
	}
	return out
}

// Filters groups the slug filter of each filterable content kind.
type Filters struct {
	Speakers *SlugFilter
	Stages   *SlugFilter
	Sponsors *SlugFilter
}

// NewFilters builds Filters from the visibility configuration.
func NewFilters(cfg config.VisibilityConfig) Filters {
	return Filters{
		Speakers: NewSlugFilter(cfg.Speakers),
		Stages:   NewSlugFilter(cfg.Stages),
		Sponsors: NewSlugFilter(cfg.Sponsors),
	}
}
