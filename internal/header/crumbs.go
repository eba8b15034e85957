package header

import (
	"strings"

	"github.com/samber/lo"
)

const (
	// Ellipsis replaces the middle of a long trail. It is not selectable.
	Ellipsis = "..."
	// EllipsisIndex marks the ellipsis entry in a collapsed trail.
	EllipsisIndex = -1

	maxCrumbs  = 5
	keepCrumbs = 2

	pathSeparator = "/"
)

// Crumb is one displayed breadcrumb. Index is the position in the full trail,
// or EllipsisIndex for the placeholder.
type Crumb struct {
	Name  string
	Index int
}

// Selectable reports whether clicking the crumb navigates anywhere.
func (c Crumb) Selectable() bool {
	return c.Index != EllipsisIndex
}

// Collapse bounds a breadcrumb trail for display. Up to five entries are shown
// as is; longer trails keep the first two and last two around an ellipsis.
func Collapse(crumbs []string) []Crumb {
	n := len(crumbs)
	if n <= maxCrumbs {
		out := make([]Crumb, n)
		for i, name := range crumbs {
			out[i] = Crumb{Name: name, Index: i}
		}
		return out
	}

	out := make([]Crumb, 0, maxCrumbs)
	for i := 0; i < keepCrumbs; i++ {
		out = append(out, Crumb{Name: crumbs[i], Index: i})
	}
	out = append(out, Crumb{Name: Ellipsis, Index: EllipsisIndex})
	for i := n - keepCrumbs; i < n; i++ {
		out = append(out, Crumb{Name: crumbs[i], Index: i})
	}
	return out
}

// draftFromCrumbs is the editable form of a trail: everything below the root.
func draftFromCrumbs(crumbs []string) string {
	if len(crumbs) <= 1 {
		return ""
	}
	return strings.Join(crumbs[1:], pathSeparator)
}

// splitDraft turns a typed path into segments, dropping the empty pieces left
// by leading, trailing, or repeated slashes.
func splitDraft(draft string) []string {
	return lo.Compact(strings.Split(draft, pathSeparator))
}
