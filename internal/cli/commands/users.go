package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tcm/internal/cli"
	"tcm/internal/domain"
	"tcm/internal/ui"
)

// UsersCommand handles the users command group
type UsersCommand struct {
	deps  *Deps
	flags *cli.Flags
}

// NewUsersCommand creates a new UsersCommand
func NewUsersCommand(deps *Deps) *UsersCommand {
	return &UsersCommand{deps: deps}
}

// Command builds the cobra command tree
func (c *UsersCommand) Command(flags *cli.Flags) *cobra.Command {
	c.flags = flags

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "List users test cases can be assigned to",
	}
	usersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE:  c.List,
	})

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE:  c.Add,
	}
	addCmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Name")
	usersCmd.AddCommand(addCmd)

	return usersCmd
}

// List prints every user
func (c *UsersCommand) List(cmd *cobra.Command, args []string) error {
	if err := ui.WithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading users", c.deps.Actions.ListUsers); err != nil {
		return err
	}
	formatter(cmd).PrintUsers(c.deps.Store.State().Users)
	return nil
}

// Add creates a user
func (c *UsersCommand) Add(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(c.flags.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	u, err := c.deps.Client.CreateUser(cmd.Context(), domain.User{Name: name})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	ui.NewConsoleNotifier(cmd.OutOrStdout()).Success(fmt.Sprintf("User %s created with id %s", u.Name, u.ID))
	return nil
}
