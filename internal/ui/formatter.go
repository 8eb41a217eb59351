package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"tcm/internal/analytics"
	"tcm/internal/domain"
	"tcm/internal/view"
)

// NoDescription is shown for records without a description
const NoDescription = "No Description"

// Formatter prints records and the dashboard for the non-interactive commands
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

func (f *Formatter) header(title string) {
	const width = 63
	pad := width - len([]rune(title))
	left := pad / 2
	c := color.New(color.FgCyan)
	c.Fprintln(f.out, "╔"+strings.Repeat("═", width)+"╗")
	c.Fprintln(f.out, "║"+strings.Repeat(" ", left)+title+strings.Repeat(" ", pad-left)+"║")
	c.Fprintln(f.out, "╚"+strings.Repeat("═", width)+"╝")
}

func description(s string) string {
	if strings.TrimSpace(s) == "" {
		return NoDescription
	}
	return s
}

// StatusColor returns the colour a status is printed in
func StatusColor(s domain.ExecutionStatus) *color.Color {
	switch s {
	case domain.StatusPassed:
		return color.New(color.FgGreen)
	case domain.StatusFailed:
		return color.New(color.FgRed)
	case domain.StatusInProgress:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgWhite)
	}
}

// PriorityColor returns the colour a priority is printed in
func PriorityColor(p domain.Priority) *color.Color {
	switch p {
	case domain.PriorityHigh:
		return color.New(color.FgRed)
	case domain.PriorityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// PrintTestCases prints one page of test cases followed by a paging line
func (f *Formatter) PrintTestCases(rows []domain.TestCase, total int, ls *view.ListState) {
	f.header("Test Cases")

	if len(rows) == 0 {
		color.New(color.FgYellow).Fprintln(f.out, "No test cases found.")
		return
	}

	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDESCRIPTION\tPRIORITY\tSTATUS\tTEST SUITE\tASSIGNED TO")
	for _, tc := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tc.ID,
			tc.Title,
			description(tc.Description),
			PriorityColor(tc.Priority).Sprint(tc.Priority),
			StatusColor(tc.ExecutionStatus).Sprint(tc.ExecutionStatus),
			tc.TestSuiteName,
			tc.AssignedUserName,
		)
	}
	w.Flush()

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, PagingLine(ls, total, "test cases"))
}

// PrintTestSuites prints one page of test suites
func (f *Formatter) PrintTestSuites(rows []domain.TestSuite, total int, ls *view.ListState) {
	f.header("Test Suites")

	if len(rows) == 0 {
		color.New(color.FgYellow).Fprintln(f.out, "No test suites found.")
		return
	}

	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDESCRIPTION")
	for _, ts := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ts.ID, ts.Title, description(ts.Description))
	}
	w.Flush()

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, PagingLine(ls, total, "test suites"))
}

// PrintUsers prints every user
func (f *Formatter) PrintUsers(users []domain.User) {
	f.header("Users")

	if len(users) == 0 {
		color.New(color.FgYellow).Fprintln(f.out, "No users found.")
		return
	}

	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\n", u.ID, u.Name)
	}
	w.Flush()
}

// PrintDashboard prints the summary cards and every breakdown
func (f *Formatter) PrintDashboard(d analytics.Dashboard, suiteCount int) {
	f.header("Test Case Dashboard")

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	row := func(label string, c *color.Color, value string) {
		fmt.Fprintf(f.out, "│ %-31s │ ", label)
		c.Fprintf(f.out, "%-27s", value)
		fmt.Fprintln(f.out, " │")
	}
	row("Total Test Cases", color.New(color.FgWhite), fmt.Sprint(d.Total))
	row("Pass Rate", color.New(color.FgGreen), fmt.Sprintf("%d%%", d.PassRate))
	row("Failure Rate", color.New(color.FgRed), fmt.Sprintf("%d%%", d.FailureRate))
	row("Completion Rate", color.New(color.FgCyan), fmt.Sprintf("%d%%", d.CompletionRate))
	row("Test Suites", color.New(color.FgWhite), fmt.Sprint(suiteCount))
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	f.printCounts("By Status", d.ByStatus)
	f.printCounts("By Priority", d.ByPriority)

	fmt.Fprintln(f.out)
	color.New(color.FgCyan, color.Bold).Fprintln(f.out, "By Test Suite")
	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SUITE\tTOTAL\tPASSED\tFAILED\tPENDING\tIN PROGRESS")
	for _, s := range d.ByTestSuite {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n", s.Name, s.Total, s.Passed, s.Failed, s.Pending, s.InProgress)
	}
	w.Flush()

	fmt.Fprintln(f.out)
	color.New(color.FgCyan, color.Bold).Fprintln(f.out, "By Assignee")
	w = tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ASSIGNEE\tASSIGNED\tPASSED\tFAILED\tPENDING\tIN PROGRESS")
	for _, a := range d.ByAssignee {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n", a.Name, a.Assigned, a.Passed, a.Failed, a.Pending, a.InProgress)
	}
	w.Flush()
}

func (f *Formatter) printCounts(title string, counts []analytics.Count) {
	fmt.Fprintln(f.out)
	color.New(color.FgCyan, color.Bold).Fprintln(f.out, title)
	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	for _, c := range counts {
		fmt.Fprintf(w, "  %s\t%d\n", c.Name, c.Value)
	}
	w.Flush()
}

// PagingLine describes the current page, filters and sort of a list
func PagingLine(ls *view.ListState, total int, noun string) string {
	parts := []string{
		fmt.Sprintf("Page %d/%d", ls.Page+1, view.PageCount(total, ls.PageSize)),
		fmt.Sprintf("%d %s", total, noun),
		fmt.Sprintf("%d per page", ls.PageSize),
	}
	if ls.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", ls.Search))
	}
	if ls.StatusFilter != "" {
		parts = append(parts, "status "+ls.StatusFilter.String())
	}
	if ls.SortField != view.SortNone {
		parts = append(parts, fmt.Sprintf("sort %s %s", ls.SortField, ls.SortOrder))
	}
	return strings.Join(parts, " | ")
}
