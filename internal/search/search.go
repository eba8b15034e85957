// Package search filters a listing against the header's search text.
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match is one listing entry that satisfied the query.
type Match struct {
	Index          int
	MatchedIndexes []int
}

// FilterNames fuzzy-matches query against names. Matches keep the order of
// names so the listing sort survives filtering. A blank query matches
// nothing; callers show the unfiltered listing instead.
func FilterNames(query string, names []string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	found := fuzzy.Find(query, names)
	matches := make([]Match, 0, len(found))
	for _, f := range found {
		matches = append(matches, Match{Index: f.Index, MatchedIndexes: f.MatchedIndexes})
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Index < matches[j].Index
	})
	return matches
}

// Indexes returns the listing positions of matches.
func Indexes(matches []Match) []int {
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}
