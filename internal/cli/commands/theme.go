package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tcm/internal/storage"
	"tcm/internal/ui"
)

// ThemeCommand shows or changes the stored theme preference
type ThemeCommand struct {
	deps *Deps
}

// NewThemeCommand creates a new ThemeCommand
func NewThemeCommand(deps *Deps) *ThemeCommand {
	return &ThemeCommand{deps: deps}
}

// Execute runs the command
func (tc *ThemeCommand) Execute(cmd *cobra.Command, args []string) error {
	prefs, err := tc.deps.Prefs.Load()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		switch args[0] {
		case "dark":
			prefs.DarkMode = true
		case "light":
			prefs.DarkMode = false
		case "toggle":
			prefs.DarkMode = !prefs.DarkMode
		default:
			return fmt.Errorf("unknown theme %q, expected dark, light or toggle", args[0])
		}
		if err := tc.deps.Prefs.Save(prefs); err != nil {
			return err
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), "Theme: ")
	color.New(color.FgCyan, color.Bold).Fprintln(cmd.OutOrStdout(), ui.ThemeFor(prefs.DarkMode).Name)
	if js, ok := tc.deps.Prefs.(*storage.JSONStorage); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Stored in %s\n", js.Path())
	}
	return nil
}
