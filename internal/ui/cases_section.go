package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tcm/internal/domain"
	"tcm/internal/store"
	"tcm/internal/view"
)

type testCasesSection struct {
	app     *App
	list    *view.ListState
	table   *tview.Table
	search  *tview.InputField
	status  *tview.TextView
	layout  *tview.Flex
	rows    []domain.TestCase
	loading bool
	theme   Theme
}

func newTestCasesSection(a *App, pageSize int) *testCasesSection {
	s := &testCasesSection{
		app:    a,
		list:   view.NewListState(pageSize),
		table:  tview.NewTable().SetSelectable(true, false).SetFixed(1, 0),
		search: tview.NewInputField().SetLabel("Search: "),
		status: tview.NewTextView().SetDynamicColors(true),
	}
	s.table.SetBorder(true)
	s.table.SetTitle(" Test Cases ")

	s.search.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			s.list.SetSearch(s.search.GetText())
		} else {
			s.search.SetText(s.list.Search)
		}
		s.render(a.state)
		a.app.SetFocus(s.table)
	})

	s.table.SetSelectedFunc(func(row, _ int) {
		if tc, ok := s.selected(row); ok {
			s.openForm(&tc)
		}
	})
	s.table.SetInputCapture(s.handleKey)

	s.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(s.search, 1, 0, false).
		AddItem(s.table, 0, 1, true).
		AddItem(s.status, 1, 0, false)
	return s
}

func (s *testCasesSection) name() string           { return "testCases" }
func (s *testCasesSection) title() string          { return "Test Cases" }
func (s *testCasesSection) root() tview.Primitive  { return s.layout }
func (s *testCasesSection) focus() tview.Primitive { return s.table }
func (s *testCasesSection) help() string {
	return "/ search  s status  o sort  O order  [ ] page  p page size  a add  enter edit  d delete"
}

// load fetches test cases along with the suites and users the form offers
func (s *testCasesSection) load() {
	s.loading = true
	s.render(s.app.state)
	acts := s.app.actions
	s.app.async(func(ctx context.Context) {
		_ = acts.ListTestSuites(ctx)
		_ = acts.ListUsers(ctx)
		_ = acts.ListTestCases(ctx)
		s.app.queue(func() {
			s.loading = false
			s.render(s.app.state)
		})
	})
}

func (s *testCasesSection) applyTheme(t Theme) {
	s.theme = t
	s.table.SetBackgroundColor(t.Background)
	s.table.SetBorderColor(t.Border)
	s.table.SetTitleColor(t.Accent)
	s.table.SetSelectedStyle(tcell.StyleDefault.Background(t.Selected).Foreground(t.Text))
	s.search.SetBackgroundColor(t.Background)
	s.search.SetFieldBackgroundColor(t.Contrast)
	s.search.SetFieldTextColor(t.Text)
	s.search.SetLabelColor(t.Accent)
	s.status.SetBackgroundColor(t.Background)
	s.status.SetTextColor(t.Secondary)
	s.layout.SetBackgroundColor(t.Background)
}

func (s *testCasesSection) render(st store.State) {
	rows, total := s.list.TestCaseRows(st.TestCases)
	if s.list.Page > 0 && len(rows) == 0 {
		s.list.Page = view.PageCount(total, s.list.PageSize) - 1
		rows, total = s.list.TestCaseRows(st.TestCases)
	}
	s.rows = rows

	s.table.Clear()
	for col, h := range []string{"Title", "Description", "Priority", "Status", "Test Suite", "Assigned To"} {
		s.table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(s.theme.Accent).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}
	for i, tc := range rows {
		r := i + 1
		s.table.SetCell(r, 0, tview.NewTableCell(tc.Title).SetTextColor(s.theme.Text).SetExpansion(1))
		s.table.SetCell(r, 1, tview.NewTableCell(description(tc.Description)).SetTextColor(s.theme.Secondary).SetExpansion(2).SetMaxWidth(40))
		s.table.SetCell(r, 2, tview.NewTableCell(tc.Priority.String()).SetTextColor(priorityCellColor(tc.Priority)))
		s.table.SetCell(r, 3, tview.NewTableCell(tc.ExecutionStatus.String()).SetTextColor(statusCellColor(tc.ExecutionStatus)))
		s.table.SetCell(r, 4, tview.NewTableCell(tc.TestSuiteName).SetTextColor(s.theme.Text))
		s.table.SetCell(r, 5, tview.NewTableCell(tc.AssignedUserName).SetTextColor(s.theme.Text))
	}
	if len(rows) == 0 {
		msg := "No test cases found"
		if s.loading {
			msg = "Loading…"
		}
		s.table.SetCell(1, 0, tview.NewTableCell(msg).SetTextColor(s.theme.Secondary).SetSelectable(false))
	}

	line := PagingLine(s.list, total, "test cases")
	if s.loading {
		line = "Loading… | " + line
	}
	s.status.SetText(" " + line)
}

func (s *testCasesSection) selected(row int) (domain.TestCase, bool) {
	i := row - 1
	if i < 0 || i >= len(s.rows) {
		return domain.TestCase{}, false
	}
	return s.rows[i], true
}

func (s *testCasesSection) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyRune {
		return event
	}
	_, total := s.list.TestCaseRows(s.app.state.TestCases)

	switch event.Rune() {
	case '/':
		s.app.app.SetFocus(s.search)
	case 's':
		s.list.CycleStatusFilter()
	case 'o':
		s.list.CycleSortField()
	case 'O':
		s.list.ToggleSortOrder()
	case ']':
		s.list.NextPage(total)
	case '[':
		s.list.PrevPage()
	case 'p':
		s.list.CyclePageSize()
	case 'a':
		s.openForm(nil)
		return nil
	case 'd':
		row, _ := s.table.GetSelection()
		if tc, ok := s.selected(row); ok {
			s.confirmDelete(tc)
		}
		return nil
	default:
		return event
	}
	s.render(s.app.state)
	return nil
}

func (s *testCasesSection) confirmDelete(tc domain.TestCase) {
	s.list.RequestDelete(tc.ID)
	s.app.confirm(
		fmt.Sprintf("Are you sure you want to delete the test case %q?", tc.Title),
		"Delete",
		func() {
			id, ok := s.list.ConfirmDelete()
			if !ok {
				return
			}
			acts := s.app.actions
			s.app.async(func(ctx context.Context) {
				_ = acts.DeleteTestCase(ctx, id)
			})
		},
		s.list.CancelDelete,
	)
}

func (s *testCasesSection) openForm(editing *domain.TestCase) {
	editingID := ""
	if editing != nil {
		editingID = editing.ID
	}
	s.list.OpenForm(editingID)

	f := view.NewTestCaseForm(editing)
	suites := s.app.state.TestSuites
	users := s.app.state.Users

	form := tview.NewForm()
	errorsView := tview.NewTextView().SetDynamicColors(true)
	showErrors := func() {
		errorsView.SetText(fieldErrorsText(f.Errors, []string{
			view.FieldTitle, view.FieldTestSuiteID, view.FieldPriority, view.FieldExecutionStatus,
		}))
	}
	set := func(field string) func(string) {
		return func(value string) {
			_ = f.Set(field, value)
			showErrors()
		}
	}

	form.AddInputField("Title", f.Draft.Title, 50, nil, set(view.FieldTitle))
	form.AddTextArea("Description", f.Draft.Description, 50, 3, 0, set(view.FieldDescription))

	priorities := domain.AllPriorities()
	form.AddDropDown("Priority", enumLabels(priorities), indexOf(priorities, f.Draft.Priority), func(option string, _ int) {
		set(view.FieldPriority)(option)
	})
	statuses := domain.AllExecutionStatuses()
	form.AddDropDown("Execution Status", enumLabels(statuses), indexOf(statuses, f.Draft.ExecutionStatus), func(option string, _ int) {
		set(view.FieldExecutionStatus)(option)
	})

	suiteLabels := make([]string, len(suites))
	suiteIndex := -1
	for i, ts := range suites {
		suiteLabels[i] = ts.Title
		if ts.ID == f.Draft.TestSuiteID {
			suiteIndex = i
		}
	}
	form.AddDropDown("Test Suite", suiteLabels, suiteIndex, func(_ string, i int) {
		if i >= 0 && i < len(suites) {
			set(view.FieldTestSuiteID)(suites[i].ID)
		}
	})

	userLabels := []string{"None"}
	userIndex := 0
	for i, u := range users {
		userLabels = append(userLabels, u.Name)
		if u.ID == f.Draft.AssignedUserID {
			userIndex = i + 1
		}
	}
	form.AddDropDown("Assigned To", userLabels, userIndex, func(_ string, i int) {
		if i == 0 {
			set(view.FieldAssignedUserID)("")
		} else if i > 0 && i <= len(users) {
			set(view.FieldAssignedUserID)(users[i-1].ID)
		}
	})

	closeForm := func() {
		s.list.CloseForm()
		s.app.closeForm()
	}
	form.AddButton("Save", func() {
		if len(f.Validate()) > 0 {
			showErrors()
			return
		}
		submit := *f
		acts := s.app.actions
		s.app.async(func(ctx context.Context) {
			msg, err := submit.Submit(ctx, acts)
			s.app.queue(func() {
				if errors.Is(err, view.ErrInvalidForm) {
					f.Errors = submit.Errors
					showErrors()
					return
				}
				if err != nil {
					return
				}
				closeForm()
				s.app.showMessage("Success", msg)
			})
		})
	})
	form.AddButton("Cancel", closeForm)
	form.SetCancelFunc(closeForm)

	title := " Add Test Case "
	if f.Editing() {
		title = " Edit Test Case "
	}
	container := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(errorsView, 2, 0, false)
	container.SetBorder(true)
	container.SetTitle(title)
	s.app.showForm(container, 22)
}

func priorityCellColor(p domain.Priority) tcell.Color {
	switch p {
	case domain.PriorityHigh:
		return tcell.ColorRed
	case domain.PriorityMedium:
		return tcell.ColorOrange
	default:
		return tcell.ColorGreen
	}
}

func statusCellColor(st domain.ExecutionStatus) tcell.Color {
	switch st {
	case domain.StatusPassed:
		return tcell.ColorGreen
	case domain.StatusFailed:
		return tcell.ColorRed
	case domain.StatusInProgress:
		return tcell.ColorYellow
	default:
		return tcell.ColorGray
	}
}
