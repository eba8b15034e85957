package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterNames(t *testing.T) {
	names := []string{
		"file1.txt",
		"file2.txt",
		"document.pdf",
		"readme.md",
		"config.json",
	}

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"exact match", "file1.txt", []int{0}},
		{"prefix", "file", []int{0, 1}},
		{"scattered letters", "dcpdf", []int{2}},
		{"case insensitive", "FILE", []int{0, 1}},
		{"no match", "xyz", []int{}},
		{"blank query", "  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterNames(tt.query, names)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, Indexes(got))
		})
	}
}

func TestFilterNamesKeepsListingOrder(t *testing.T) {
	names := []string{"zeta-report", "report", "a-report-old"}

	got := FilterNames("report", names)

	assert.Equal(t, []int{0, 1, 2}, Indexes(got))
	for _, m := range got {
		assert.Len(t, m.MatchedIndexes, len("report"))
	}
}
