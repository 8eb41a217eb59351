package view

import (
	"sort"
	"strings"

	"tcm/internal/domain"
)

// SortField selects the attribute list rows are ordered by
type SortField string

const (
	SortNone     SortField = ""
	SortTitle    SortField = "title"
	SortPriority SortField = "priority"
	SortStatus   SortField = "executionStatus"
)

// SortFields lists the selectable fields, SortNone first
var SortFields = []SortField{SortNone, SortTitle, SortPriority, SortStatus}

// SortOrder is ascending or descending
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Filter derives displayed rows from a full slice. It never modifies its input.
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// containsFold reports whether s contains substr, ignoring case
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// FilterTestCases keeps cases whose title or description contains query
// (case-insensitive) and, when status is set, whose status equals it.
func (f *Filter) FilterTestCases(cases []domain.TestCase, query string, status domain.ExecutionStatus) []domain.TestCase {
	filtered := make([]domain.TestCase, 0, len(cases))
	for _, tc := range cases {
		if query != "" && !containsFold(tc.Title, query) && !containsFold(tc.Description, query) {
			continue
		}
		if status != "" && tc.ExecutionStatus != status {
			continue
		}
		filtered = append(filtered, tc)
	}
	return filtered
}

// FilterTestSuites keeps suites whose title or description contains query
func (f *Filter) FilterTestSuites(suites []domain.TestSuite, query string) []domain.TestSuite {
	filtered := make([]domain.TestSuite, 0, len(suites))
	for _, ts := range suites {
		if query != "" && !containsFold(ts.Title, query) && !containsFold(ts.Description, query) {
			continue
		}
		filtered = append(filtered, ts)
	}
	return filtered
}

// compareText orders strings case-insensitively, falling back to a byte compare
func compareText(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareBy(field SortField) func(a, b domain.TestCase) int {
	switch field {
	case SortTitle:
		return func(a, b domain.TestCase) int { return compareText(a.Title, b.Title) }
	case SortPriority:
		return func(a, b domain.TestCase) int { return a.Priority.Rank() - b.Priority.Rank() }
	case SortStatus:
		return func(a, b domain.TestCase) int {
			return compareText(a.ExecutionStatus.String(), b.ExecutionStatus.String())
		}
	default:
		return nil
	}
}

// SortTestCases returns a sorted copy. Titles and statuses compare
// case-insensitively, with a byte-wise tie-break between keys that differ
// only in case; priorities compare by rank. The sort is stable, so equal
// keys keep their input order in both directions. An unknown or empty
// field returns the input order.
func (f *Filter) SortTestCases(cases []domain.TestCase, field SortField, order SortOrder) []domain.TestCase {
	sorted := make([]domain.TestCase, len(cases))
	copy(sorted, cases)

	cmp := compareBy(field)
	if cmp == nil {
		return sorted
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == Descending {
			return cmp(sorted[j], sorted[i]) < 0
		}
		return cmp(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// Paginate returns the page-th window of size items. Out of range pages are empty.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 || page < 0 {
		return []T{}
	}
	start := page * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageCount returns how many pages n items fill, at least 1
func PageCount(n, size int) int {
	if size <= 0 || n == 0 {
		return 1
	}
	return (n + size - 1) / size
}
