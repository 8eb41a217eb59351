package view

import (
	"tcm/internal/config"
	"tcm/internal/domain"
)

// ListState is the local UI state of a list view. None of it is stored in
// the application store.
type ListState struct {
	Page         int
	PageSize     int
	Search       string
	StatusFilter domain.ExecutionStatus
	SortField    SortField
	SortOrder    SortOrder

	DialogOpen    bool
	EditingID     string
	PendingDelete string

	filter *Filter
}

// NewListState returns the state a list view starts with
func NewListState(pageSize int) *ListState {
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	return &ListState{
		PageSize:  pageSize,
		SortOrder: Ascending,
		filter:    NewFilter(),
	}
}

// SetSearch changes the query and returns to the first page
func (s *ListState) SetSearch(q string) {
	s.Search = q
	s.Page = 0
}

// SetStatusFilter changes the status filter and returns to the first page
func (s *ListState) SetStatusFilter(status domain.ExecutionStatus) {
	s.StatusFilter = status
	s.Page = 0
}

// CycleStatusFilter steps through All, then every status
func (s *ListState) CycleStatusFilter() {
	options := append([]domain.ExecutionStatus{""}, domain.AllExecutionStatuses()...)
	s.SetStatusFilter(options[(indexOf(options, s.StatusFilter)+1)%len(options)])
}

// SetSort changes sort field and order
func (s *ListState) SetSort(field SortField, order SortOrder) {
	s.SortField = field
	if order != Descending {
		order = Ascending
	}
	s.SortOrder = order
}

// CycleSortField steps through SortFields
func (s *ListState) CycleSortField() {
	s.SortField = SortFields[(indexOf(SortFields, s.SortField)+1)%len(SortFields)]
}

// ToggleSortOrder flips between ascending and descending
func (s *ListState) ToggleSortOrder() {
	if s.SortOrder == Descending {
		s.SortOrder = Ascending
		return
	}
	s.SortOrder = Descending
}

// SetPageSize changes rows per page and returns to the first page
func (s *ListState) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	s.PageSize = size
	s.Page = 0
}

// CyclePageSize steps through config.PageSizeOptions
func (s *ListState) CyclePageSize() {
	i := indexOf(config.PageSizeOptions, s.PageSize)
	s.SetPageSize(config.PageSizeOptions[(i+1)%len(config.PageSizeOptions)])
}

// NextPage moves forward unless already on the last page of total rows
func (s *ListState) NextPage(total int) {
	if s.Page+1 < PageCount(total, s.PageSize) {
		s.Page++
	}
}

// PrevPage moves back unless on the first page
func (s *ListState) PrevPage() {
	if s.Page > 0 {
		s.Page--
	}
}

// OpenForm opens the form dialog, editing id or creating when id is empty
func (s *ListState) OpenForm(id string) {
	s.DialogOpen = true
	s.EditingID = id
}

// CloseForm closes the form dialog
func (s *ListState) CloseForm() {
	s.DialogOpen = false
	s.EditingID = ""
}

// RequestDelete asks for confirmation before deleting id
func (s *ListState) RequestDelete(id string) {
	s.PendingDelete = id
}

// ConfirmDelete returns the id awaiting confirmation and clears it
func (s *ListState) ConfirmDelete() (string, bool) {
	id := s.PendingDelete
	s.PendingDelete = ""
	return id, id != ""
}

// CancelDelete drops the pending delete
func (s *ListState) CancelDelete() {
	s.PendingDelete = ""
}

// FilteredTestCases applies search, status filter and sort
func (s *ListState) FilteredTestCases(cases []domain.TestCase) []domain.TestCase {
	filtered := s.filter.FilterTestCases(cases, s.Search, s.StatusFilter)
	return s.filter.SortTestCases(filtered, s.SortField, s.SortOrder)
}

// TestCaseRows returns the rows of the current page and the number of
// matching rows across all pages
func (s *ListState) TestCaseRows(cases []domain.TestCase) ([]domain.TestCase, int) {
	all := s.FilteredTestCases(cases)
	return Paginate(all, s.Page, s.PageSize), len(all)
}

// TestSuiteRows returns the suites of the current page and the number of
// matching suites
func (s *ListState) TestSuiteRows(suites []domain.TestSuite) ([]domain.TestSuite, int) {
	all := s.filter.FilterTestSuites(suites, s.Search)
	return Paginate(all, s.Page, s.PageSize), len(all)
}

func indexOf[T comparable](items []T, v T) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return -1
}
