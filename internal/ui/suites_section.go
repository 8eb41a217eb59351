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

type testSuitesSection struct {
	app     *App
	list    *view.ListState
	table   *tview.Table
	search  *tview.InputField
	status  *tview.TextView
	layout  *tview.Flex
	rows    []domain.TestSuite
	loading bool
	theme   Theme
}

func newTestSuitesSection(a *App, pageSize int) *testSuitesSection {
	s := &testSuitesSection{
		app:    a,
		list:   view.NewListState(pageSize),
		table:  tview.NewTable().SetSelectable(true, false).SetFixed(1, 0),
		search: tview.NewInputField().SetLabel("Search: "),
		status: tview.NewTextView().SetDynamicColors(true),
	}
	s.table.SetBorder(true)
	s.table.SetTitle(" Test Suites ")

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
		if ts, ok := s.selected(row); ok {
			s.openForm(&ts)
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

func (s *testSuitesSection) name() string           { return "testSuites" }
func (s *testSuitesSection) title() string          { return "Test Suites" }
func (s *testSuitesSection) root() tview.Primitive  { return s.layout }
func (s *testSuitesSection) focus() tview.Primitive { return s.table }
func (s *testSuitesSection) help() string {
	return "/ search  [ ] page  p page size  a add  enter edit  d delete"
}

func (s *testSuitesSection) load() {
	s.loading = true
	s.render(s.app.state)
	acts := s.app.actions
	s.app.async(func(ctx context.Context) {
		_ = acts.ListTestSuites(ctx)
		s.app.queue(func() {
			s.loading = false
			s.render(s.app.state)
		})
	})
}

func (s *testSuitesSection) applyTheme(t Theme) {
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

func (s *testSuitesSection) render(st store.State) {
	rows, total := s.list.TestSuiteRows(st.TestSuites)
	if s.list.Page > 0 && len(rows) == 0 {
		s.list.Page = view.PageCount(total, s.list.PageSize) - 1
		rows, total = s.list.TestSuiteRows(st.TestSuites)
	}
	s.rows = rows

	s.table.Clear()
	for col, h := range []string{"Title", "Description"} {
		s.table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(s.theme.Accent).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}
	for i, ts := range rows {
		s.table.SetCell(i+1, 0, tview.NewTableCell(ts.Title).SetTextColor(s.theme.Text).SetExpansion(1))
		s.table.SetCell(i+1, 1, tview.NewTableCell(description(ts.Description)).SetTextColor(s.theme.Secondary).SetExpansion(3))
	}
	if len(rows) == 0 {
		msg := "No test suites found"
		if s.loading {
			msg = "Loading…"
		}
		s.table.SetCell(1, 0, tview.NewTableCell(msg).SetTextColor(s.theme.Secondary).SetSelectable(false))
	}

	line := PagingLine(s.list, total, "test suites")
	if s.loading {
		line = "Loading… | " + line
	}
	s.status.SetText(" " + line)
}

func (s *testSuitesSection) selected(row int) (domain.TestSuite, bool) {
	i := row - 1
	if i < 0 || i >= len(s.rows) {
		return domain.TestSuite{}, false
	}
	return s.rows[i], true
}

func (s *testSuitesSection) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyRune {
		return event
	}
	_, total := s.list.TestSuiteRows(s.app.state.TestSuites)

	switch event.Rune() {
	case '/':
		s.app.app.SetFocus(s.search)
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
		if ts, ok := s.selected(row); ok {
			s.confirmDelete(ts)
		}
		return nil
	default:
		return event
	}
	s.render(s.app.state)
	return nil
}

func (s *testSuitesSection) confirmDelete(ts domain.TestSuite) {
	s.list.RequestDelete(ts.ID)
	s.app.confirm(
		fmt.Sprintf("Are you sure you want to delete the test suite %q?", ts.Title),
		"Delete",
		func() {
			id, ok := s.list.ConfirmDelete()
			if !ok {
				return
			}
			acts := s.app.actions
			s.app.async(func(ctx context.Context) {
				_ = acts.DeleteTestSuite(ctx, id)
			})
		},
		s.list.CancelDelete,
	)
}

func (s *testSuitesSection) openForm(editing *domain.TestSuite) {
	editingID := ""
	if editing != nil {
		editingID = editing.ID
	}
	s.list.OpenForm(editingID)

	f := view.NewTestSuiteForm(editing)
	form := tview.NewForm()
	errorsView := tview.NewTextView().SetDynamicColors(true)
	showErrors := func() {
		errorsView.SetText(fieldErrorsText(f.Errors, []string{view.FieldTitle}))
	}
	set := func(field string) func(string) {
		return func(value string) {
			_ = f.Set(field, value)
			showErrors()
		}
	}

	form.AddInputField("Title", f.Draft.Title, 50, nil, set(view.FieldTitle))
	form.AddTextArea("Description", f.Draft.Description, 50, 4, 0, set(view.FieldDescription))

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

	title := " Add Test Suite "
	if f.Editing() {
		title = " Edit Test Suite "
	}
	container := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(errorsView, 1, 0, false)
	container.SetBorder(true)
	container.SetTitle(title)
	s.app.showForm(container, 14)
}
