package header

import (
	"fmt"
	"strings"
)

// View selects how the browser lays out a location.
type View int

const (
	ViewColumns View = iota
	ViewList
)

func (v View) String() string {
	switch v {
	case ViewList:
		return "list"
	default:
		return "columns"
	}
}

// Next returns the other view.
func (v View) Next() View {
	if v == ViewList {
		return ViewColumns
	}
	return ViewList
}

// ParseView converts a config value into a View.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "columns", "column":
		return ViewColumns, nil
	case "list":
		return ViewList, nil
	}
	return ViewColumns, fmt.Errorf("unknown view %q (want columns or list)", s)
}

// SortKey is the attribute the listing is ordered by.
type SortKey int

const (
	SortName SortKey = iota
	SortCreatedAt
	SortUpdatedAt
	SortLastAccessedAt
)

var sortKeyNames = []string{"name", "created_at", "updated_at", "last_accessed_at"}

func (s SortKey) String() string {
	if int(s) < 0 || int(s) >= len(sortKeyNames) {
		return sortKeyNames[0]
	}
	return sortKeyNames[s]
}

// Label is the menu text for the sort key.
func (s SortKey) Label() string {
	switch s {
	case SortCreatedAt:
		return "Sort by last created"
	case SortUpdatedAt:
		return "Sort by last modified"
	case SortLastAccessedAt:
		return "Sort by last accessed"
	default:
		return "Sort by name"
	}
}

// Short is the compact label used in the header bar.
func (s SortKey) Short() string {
	switch s {
	case SortCreatedAt:
		return "created"
	case SortUpdatedAt:
		return "modified"
	case SortLastAccessedAt:
		return "accessed"
	default:
		return "name"
	}
}

// Next cycles through the sort keys in menu order.
func (s SortKey) Next() SortKey {
	return SortKey((int(s) + 1) % len(sortKeyNames))
}

// ParseSortKey converts a config value into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if norm == "" {
		return SortName, nil
	}
	for i, name := range sortKeyNames {
		if norm == name {
			return SortKey(i), nil
		}
	}
	return SortName, fmt.Errorf("unknown sort key %q (want one of %s)", s, strings.Join(sortKeyNames, ", "))
}

// Loading is the parent's busy signal. While IsLoading is set the header shows
// a spinner with Message in place of the location.
type Loading struct {
	IsLoading bool
	Message   string
}

// Props is the display state the parent hands the header on every update.
// The header never mutates it.
type Props struct {
	View         View
	SortBy       SortKey
	Loading      Loading
	Breadcrumbs  []string // root first
	BackDisabled bool

	// Initial/external search state. ItemSearchString seeds the search draft
	// once, when the header is created.
	IsSearching      bool
	ItemSearchString string
}

// Intents emitted to the parent. Each is delivered as a tea.Msg.
type (
	SetViewMsg struct{ View View }
	SetSortMsg struct{ Sort SortKey }

	ToggleSearchMsg struct{ Active bool }

	// SetSearchTextMsg carries the debounced search text. Cancelling search
	// sends an empty Text right away.
	SetSearchTextMsg struct{ Text string }

	// SetPathMsg asks the parent to navigate to the given segments below the
	// root. Segments may name locations that do not exist; resolving them is
	// up to the parent.
	SetPathMsg struct{ Segments []string }

	// SelectCrumbMsg asks the parent to truncate the path to Index+1 entries.
	SelectCrumbMsg struct{ Index int }

	BackMsg         struct{}
	CreateFolderMsg struct{}
	ReloadMsg       struct{}

	// FilesUploadedMsg forwards the picked files untouched.
	FilesUploadedMsg struct{ Files []string }
)
