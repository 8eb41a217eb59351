package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tcm/internal/cli"
	"tcm/internal/config"
	"tcm/internal/domain"
	"tcm/internal/ui"
	"tcm/internal/view"
)

// SuitesCommand handles the suites command group
type SuitesCommand struct {
	deps  *Deps
	flags *cli.Flags
}

// NewSuitesCommand creates a new SuitesCommand
func NewSuitesCommand(deps *Deps) *SuitesCommand {
	return &SuitesCommand{deps: deps}
}

// Command builds the cobra command tree
func (c *SuitesCommand) Command(flags *cli.Flags) *cobra.Command {
	c.flags = flags

	suitesCmd := &cobra.Command{
		Use:     "suites",
		Aliases: []string{"suite", "ts"},
		Short:   "List and manage test suites",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List test suites",
		Args:  cobra.NoArgs,
		RunE:  c.List,
	}
	listFlags(listCmd, flags)
	suitesCmd.AddCommand(listCmd)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a test suite",
		Args:  cobra.NoArgs,
		RunE:  c.Add,
	}
	addCmd.Flags().StringVarP(&flags.Title, "title", "t", "", "Title")
	addCmd.Flags().StringVarP(&flags.Description, "description", "d", "", "Description")
	suitesCmd.AddCommand(addCmd)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a test suite",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Update,
	}
	updateCmd.Flags().StringVarP(&flags.Title, "title", "t", "", "Title")
	updateCmd.Flags().StringVarP(&flags.Description, "description", "d", "", "Description")
	suitesCmd.AddCommand(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a test suite",
		Long:  "Delete a test suite. Test cases that reference it are kept and show as Unassigned.",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Delete,
	}
	deleteCmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Do not ask for confirmation")
	suitesCmd.AddCommand(deleteCmd)

	return suitesCmd
}

// List prints one page of test suites
func (c *SuitesCommand) List(cmd *cobra.Command, args []string) error {
	ls, err := listState(c.flags)
	if err != nil {
		return err
	}

	if err := ui.WithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading test suites", c.deps.Actions.ListTestSuites); err != nil {
		return err
	}

	rows, total := ls.TestSuiteRows(c.deps.Store.State().TestSuites)
	formatter(cmd).PrintTestSuites(rows, total, ls)
	return nil
}

func (c *SuitesCommand) applyFlags(cmd *cobra.Command, form *view.TestSuiteForm) {
	if cmd.Flags().Changed("title") {
		_ = form.Set(view.FieldTitle, c.flags.Title)
	}
	if cmd.Flags().Changed("description") {
		_ = form.Set(view.FieldDescription, c.flags.Description)
	}
}

func (c *SuitesCommand) submit(cmd *cobra.Command, form *view.TestSuiteForm) error {
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

// Add creates a test suite
func (c *SuitesCommand) Add(cmd *cobra.Command, args []string) error {
	form := view.NewTestSuiteForm(nil)
	c.applyFlags(cmd, form)
	return c.submit(cmd, form)
}

// Update replaces a test suite, keeping values not given as flags
func (c *SuitesCommand) Update(cmd *cobra.Command, args []string) error {
	id := args[0]
	if err := c.deps.Actions.ListTestSuites(cmd.Context()); err != nil {
		return err
	}

	var existing *domain.TestSuite
	for _, ts := range c.deps.Store.State().TestSuites {
		if ts.ID == id {
			existing = &ts
			break
		}
	}
	if existing == nil {
		return fmt.Errorf("test suite %q not found", id)
	}

	form := view.NewTestSuiteForm(existing)
	c.applyFlags(cmd, form)
	return c.submit(cmd, form)
}

// Delete removes a test suite after confirmation
func (c *SuitesCommand) Delete(cmd *cobra.Command, args []string) error {
	ls := view.NewListState(config.DefaultPageSize)
	ls.RequestDelete(args[0])

	if !c.flags.Yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete test suite %s?", args[0])) {
		ls.CancelDelete()
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "Cancelled")
		return nil
	}

	id, ok := ls.ConfirmDelete()
	if !ok {
		return nil
	}
	if err := c.deps.Actions.DeleteTestSuite(cmd.Context(), id); err != nil {
		return err
	}
	ui.NewConsoleNotifier(cmd.OutOrStdout()).Success("Test suite deleted successfully")
	return nil
}
