package commands

import (
	"github.com/spf13/cobra"

	"tcm/internal/ui"
)

// UICommand starts the interactive client
type UICommand struct {
	deps *Deps
}

// NewUICommand creates a new UICommand
func NewUICommand(deps *Deps) *UICommand {
	return &UICommand{deps: deps}
}

// Execute runs the command
func (uc *UICommand) Execute(cmd *cobra.Command, args []string) error {
	app := ui.NewApp(uc.deps.Config, uc.deps.Actions, uc.deps.Prefs, uc.deps.Logger)
	return app.Run()
}
