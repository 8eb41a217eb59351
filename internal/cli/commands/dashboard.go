package commands

import (
	"github.com/spf13/cobra"

	"tcm/internal/analytics"
	"tcm/internal/ui"
)

// DashboardCommand prints the analytics dashboard
type DashboardCommand struct {
	deps *Deps
}

// NewDashboardCommand creates a new DashboardCommand
func NewDashboardCommand(deps *Deps) *DashboardCommand {
	return &DashboardCommand{deps: deps}
}

// Execute runs the command
func (dc *DashboardCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := ui.WithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading test cases", dc.deps.Actions.ListTestCases); err != nil {
		return err
	}

	cases := dc.deps.Store.State().TestCases
	formatter(cmd).PrintDashboard(analytics.Compute(cases), len(analytics.Suites(cases)))
	return nil
}
