package commands

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tcm/internal/cli"
	"tcm/internal/config"
	"tcm/internal/domain"
	"tcm/internal/ui"
	"tcm/internal/view"
)

// CasesCommand handles the cases command group
type CasesCommand struct {
	deps  *Deps
	flags *cli.Flags
}

// NewCasesCommand creates a new CasesCommand
func NewCasesCommand(deps *Deps) *CasesCommand {
	return &CasesCommand{deps: deps}
}

// Command builds the cobra command tree
func (c *CasesCommand) Command(flags *cli.Flags) *cobra.Command {
	c.flags = flags

	casesCmd := &cobra.Command{
		Use:     "cases",
		Aliases: []string{"case", "tc"},
		Short:   "List and manage test cases",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List test cases",
		Long:  "Fetch test cases with their suite and assignee names, then filter, sort and page them",
		Args:  cobra.NoArgs,
		RunE:  c.List,
	}
	listFlags(listCmd, flags)
	listCmd.Flags().StringVar(&flags.Status, "status", "", "Only this execution status (Pending, In Progress, Passed, Failed)")
	listCmd.Flags().StringVar(&flags.Sort, "sort", "", "Sort by title, priority or executionStatus")
	listCmd.Flags().StringVar(&flags.Order, "order", string(view.Ascending), "Sort order: asc or desc")
	casesCmd.AddCommand(listCmd)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a test case",
		Args:  cobra.NoArgs,
		RunE:  c.Add,
	}
	recordFlags(addCmd, flags)
	casesCmd.AddCommand(addCmd)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a test case",
		Long:  "Replace a test case with its current values overridden by the given flags",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Update,
	}
	recordFlags(updateCmd, flags)
	casesCmd.AddCommand(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a test case",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Delete,
	}
	deleteCmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Do not ask for confirmation")
	casesCmd.AddCommand(deleteCmd)

	return casesCmd
}

func recordFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.Title, "title", "t", "", "Title")
	cmd.Flags().StringVarP(&flags.Description, "description", "d", "", "Description")
	cmd.Flags().StringVar(&flags.Priority, "priority", "", "Priority: Low, Medium or High (default Medium)")
	cmd.Flags().StringVar(&flags.ExecStatus, "status", "", "Execution status: Pending, In Progress, Passed or Failed (default Pending)")
	cmd.Flags().StringVar(&flags.SuiteID, "suite", "", "Test suite id")
	cmd.Flags().StringVar(&flags.AssigneeID, "assignee", "", "Assigned user id, empty for none")
}

// listState builds the list view state from the list flags
func listState(flags *cli.Flags) (*view.ListState, error) {
	if !slices.Contains(config.PageSizeOptions, flags.PageSize) {
		return nil, fmt.Errorf("page size must be one of %v", config.PageSizeOptions)
	}
	if flags.Page < 1 {
		return nil, fmt.Errorf("page must be 1 or greater")
	}
	ls := view.NewListState(flags.PageSize)
	ls.SetSearch(flags.Search)
	ls.Page = flags.Page - 1
	return ls, nil
}

// List prints one page of test cases
func (c *CasesCommand) List(cmd *cobra.Command, args []string) error {
	ls, err := listState(c.flags)
	if err != nil {
		return err
	}
	if c.flags.Status != "" {
		status, err := domain.ParseExecutionStatus(c.flags.Status)
		if err != nil {
			return err
		}
		ls.StatusFilter = status
	}
	field := view.SortField(c.flags.Sort)
	if !slices.Contains(view.SortFields, field) {
		return fmt.Errorf("unknown sort field %q", c.flags.Sort)
	}
	order := view.SortOrder(strings.ToLower(c.flags.Order))
	if order != view.Ascending && order != view.Descending {
		return fmt.Errorf("unknown sort order %q", c.flags.Order)
	}
	ls.SetSort(field, order)

	ctx := cmd.Context()
	if err := ui.WithSpinner(ctx, cmd.ErrOrStderr(), "Loading test cases", c.deps.Actions.ListTestCases); err != nil {
		return err
	}

	rows, total := ls.TestCaseRows(c.deps.Store.State().TestCases)
	formatter(cmd).PrintTestCases(rows, total, ls)
	return nil
}

// applyRecordFlags copies the changed record flags into the form
func applyRecordFlags(cmd *cobra.Command, flags *cli.Flags, form *view.TestCaseForm) error {
	fields := []struct {
		flag  string
		field string
		value string
	}{
		{"title", view.FieldTitle, flags.Title},
		{"description", view.FieldDescription, flags.Description},
		{"priority", view.FieldPriority, flags.Priority},
		{"status", view.FieldExecutionStatus, flags.ExecStatus},
		{"suite", view.FieldTestSuiteID, flags.SuiteID},
		{"assignee", view.FieldAssignedUserID, flags.AssigneeID},
	}
	for _, f := range fields {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		value := f.value
		switch f.field {
		case view.FieldPriority:
			p, err := domain.ParsePriority(value)
			if err != nil {
				return err
			}
			value = p.String()
		case view.FieldExecutionStatus:
			s, err := domain.ParseExecutionStatus(value)
			if err != nil {
				return err
			}
			value = s.String()
		}
		if err := form.Set(f.field, value); err != nil {
			return err
		}
	}
	return nil
}

// formError turns field errors into a single error
func formError(errs map[string]string) error {
	msgs := make([]string, 0, len(errs))
	for _, msg := range errs {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", view.ErrInvalidForm, strings.Join(msgs, "; "))
}

func (c *CasesCommand) submit(cmd *cobra.Command, form *view.TestCaseForm) error {
	msg, err := form.Submit(cmd.Context(), c.deps.Actions)
	if errors.Is(err, view.ErrInvalidForm) {
		return formError(form.Errors)
	}
	if err != nil {
		return err
	}
	ui.NewConsoleNotifier(cmd.OutOrStdout()).Success(msg)
	return nil
}

// Add creates a test case from the flags
func (c *CasesCommand) Add(cmd *cobra.Command, args []string) error {
	form := view.NewTestCaseForm(nil)
	if err := applyRecordFlags(cmd, c.flags, form); err != nil {
		return err
	}
	return c.submit(cmd, form)
}

// Update replaces a test case, keeping values not given as flags
func (c *CasesCommand) Update(cmd *cobra.Command, args []string) error {
	id := args[0]
	if err := c.deps.Actions.ListTestCases(cmd.Context()); err != nil {
		return err
	}

	var existing *domain.TestCase
	for _, tc := range c.deps.Store.State().TestCases {
		if tc.ID == id {
			existing = &tc
			break
		}
	}
	if existing == nil {
		return fmt.Errorf("test case %q not found", id)
	}

	form := view.NewTestCaseForm(existing)
	if err := applyRecordFlags(cmd, c.flags, form); err != nil {
		return err
	}
	return c.submit(cmd, form)
}

// Delete removes a test case after confirmation
func (c *CasesCommand) Delete(cmd *cobra.Command, args []string) error {
	ls := view.NewListState(config.DefaultPageSize)
	ls.RequestDelete(args[0])

	if !c.flags.Yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete test case %s?", args[0])) {
		ls.CancelDelete()
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "Cancelled")
		return nil
	}

	id, ok := ls.ConfirmDelete()
	if !ok {
		return nil
	}
	if err := c.deps.Actions.DeleteTestCase(cmd.Context(), id); err != nil {
		return err
	}
	ui.NewConsoleNotifier(cmd.OutOrStdout()).Success("Test case deleted successfully")
	return nil
}
