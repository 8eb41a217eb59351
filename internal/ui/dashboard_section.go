package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tcm/internal/analytics"
	"tcm/internal/domain"
	"tcm/internal/store"
)

// DashboardTabs are the breakdowns the dashboard switches between
var DashboardTabs = []string{"Status", "Priority", "Test Suites", "Assignees"}

type dashboardSection struct {
	app     *App
	text    *tview.TextView
	tab     int
	loading bool
}

func newDashboardSection(a *App) *dashboardSection {
	s := &dashboardSection{
		app:  a,
		text: tview.NewTextView().SetDynamicColors(true).SetWrap(false),
	}
	s.text.SetBorder(true)
	s.text.SetTitle(" Dashboard ")
	s.text.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyRight:
			s.tab = (s.tab + 1) % len(DashboardTabs)
		case tcell.KeyLeft:
			s.tab = (s.tab + len(DashboardTabs) - 1) % len(DashboardTabs)
		default:
			return event
		}
		s.render(a.state)
		return nil
	})
	return s
}

func (s *dashboardSection) name() string           { return "dashboard" }
func (s *dashboardSection) title() string          { return "Dashboard" }
func (s *dashboardSection) root() tview.Primitive  { return s.text }
func (s *dashboardSection) focus() tview.Primitive { return s.text }
func (s *dashboardSection) help() string           { return "← → switch breakdown" }

func (s *dashboardSection) load() {
	s.loading = true
	s.render(s.app.state)
	acts := s.app.actions
	s.app.async(func(ctx context.Context) {
		_ = acts.ListTestCases(ctx)
		s.app.queue(func() {
			s.loading = false
			s.render(s.app.state)
		})
	})
}

func (s *dashboardSection) applyTheme(t Theme) {
	s.text.SetBackgroundColor(t.Background)
	s.text.SetTextColor(t.Text)
	s.text.SetBorderColor(t.Border)
	s.text.SetTitleColor(t.Accent)
}

func (s *dashboardSection) render(st store.State) {
	if s.loading && len(st.TestCases) == 0 {
		s.text.SetText("\n  Loading…")
	} else {
		d := analytics.Compute(st.TestCases)
		s.text.SetText(DashboardText(d, len(analytics.Suites(st.TestCases)), s.tab))
	}
}

// DashboardText renders the summary cards and the selected breakdown with tview colour tags
func DashboardText(d analytics.Dashboard, suiteCount, tab int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n  [::b]Total Test Cases[::-] %-6d", d.Total)
	fmt.Fprintf(&b, "[green::b]Pass Rate[-::-] %3d%%   ", d.PassRate)
	fmt.Fprintf(&b, "[red::b]Failure Rate[-::-] %3d%%   ", d.FailureRate)
	fmt.Fprintf(&b, "[blue::b]Completion Rate[-::-] %3d%%   ", d.CompletionRate)
	fmt.Fprintf(&b, "[::b]Test Suites[::-] %d\n\n  ", suiteCount)

	for i, name := range DashboardTabs {
		if i == tab {
			fmt.Fprintf(&b, "[::r] %s [::-] ", name)
		} else {
			fmt.Fprintf(&b, " %s  ", name)
		}
	}
	b.WriteString("\n\n")

	switch tab {
	case 0:
		writeBars(&b, d.ByStatus, d.Total, statusTag)
	case 1:
		writeBars(&b, d.ByPriority, d.Total, priorityTag)
	case 2:
		fmt.Fprintf(&b, "  [::b]%-28s %6s %7s %7s %8s %12s[::-]\n", "Suite", "Total", "Passed", "Failed", "Pending", "In Progress")
		for _, st := range d.ByTestSuite {
			fmt.Fprintf(&b, "  %-28s %6d [green]%7d[-] [red]%7d[-] %8d [yellow]%12d[-]\n",
				tview.Escape(st.Name), st.Total, st.Passed, st.Failed, st.Pending, st.InProgress)
		}
	case 3:
		fmt.Fprintf(&b, "  [::b]%-28s %8s %7s %7s %8s %12s[::-]\n", "Assignee", "Assigned", "Passed", "Failed", "Pending", "In Progress")
		for _, a := range d.ByAssignee {
			fmt.Fprintf(&b, "  %-28s %8d [green]%7d[-] [red]%7d[-] %8d [yellow]%12d[-]\n",
				tview.Escape(a.Name), a.Assigned, a.Passed, a.Failed, a.Pending, a.InProgress)
		}
	}
	return b.String()
}

func writeBars(b *strings.Builder, counts []analytics.Count, total int, tag func(string) string) {
	const width = 40
	for _, c := range counts {
		n := 0
		if total > 0 {
			n = c.Value * width / total
		}
		fmt.Fprintf(b, "  %-12s %4d  %s%s[-]\n", c.Name, c.Value, tag(c.Name), strings.Repeat("█", n))
	}
}

func statusTag(name string) string {
	switch domain.ExecutionStatus(name) {
	case domain.StatusPassed:
		return "[green]"
	case domain.StatusFailed:
		return "[red]"
	case domain.StatusInProgress:
		return "[yellow]"
	default:
		return "[gray]"
	}
}

func priorityTag(name string) string {
	switch domain.Priority(name) {
	case domain.PriorityHigh:
		return "[red]"
	case domain.PriorityMedium:
		return "[orange]"
	default:
		return "[green]"
	}
}
