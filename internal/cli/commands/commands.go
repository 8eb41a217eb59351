package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tcm/internal/actions"
	"tcm/internal/api"
	"tcm/internal/cli"
	"tcm/internal/config"
	"tcm/internal/logger"
	"tcm/internal/storage"
	"tcm/internal/store"
	"tcm/internal/ui"
)

// Deps are built once flags are parsed, before any command runs
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Client  *api.Client
	Store   *store.Store
	Actions *actions.Actions
	Prefs   storage.Storage

	closeLog func()
}

// Close flushes the logger
func (d *Deps) Close() {
	if d.closeLog != nil {
		d.closeLog()
		d.closeLog = nil
	}
}

// formatter prints to the command's standard output
func formatter(cmd *cobra.Command) *ui.Formatter {
	return ui.NewFormatter(cmd.OutOrStdout())
}

// Commands holds all CLI commands
type Commands struct {
	deps      *Deps
	UI        *UICommand
	Cases     *CasesCommand
	Suites    *SuitesCommand
	Users     *UsersCommand
	Dashboard *DashboardCommand
	Theme     *ThemeCommand
	Serve     *ServeCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	deps := &Deps{Config: cfg, Logger: zap.NewNop()}
	return &Commands{
		deps:      deps,
		UI:        NewUICommand(deps),
		Cases:     NewCasesCommand(deps),
		Suites:    NewSuitesCommand(deps),
		Users:     NewUsersCommand(deps),
		Dashboard: NewDashboardCommand(deps),
		Theme:     NewThemeCommand(deps),
		Serve:     NewServeCommand(deps),
	}
}

// Deps returns the shared dependencies
func (c *Commands) Deps() *Deps {
	return c.deps
}

// setup applies flags and builds the logger, API client, store and actions
func (c *Commands) setup(cmd *cobra.Command, flags *cli.Flags) error {
	cfg := c.deps.Config
	cfg.ApplyFlags(flags.ToConfigFlags())
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, closeLog, err := logger.New(logger.FromAppConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	c.deps.Logger = log
	c.deps.closeLog = closeLog

	c.deps.Client = api.NewClient(cfg, log)
	c.deps.Store = store.New(log)
	c.deps.Actions = actions.New(c.deps.Client, c.deps.Store, ui.NewConsoleNotifier(cmd.ErrOrStderr()), log)
	c.deps.Prefs = storage.NewJSONStorage(cfg)

	log.Debug("configuration loaded",
		zap.String("command", cmd.CommandPath()),
		zap.String("api_url", cfg.GetAPIURL()),
	)
	return nil
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVar(&flags.APIURL, "api-url", "", fmt.Sprintf("Backend base URL (default %s, env TCM_API_URL)", config.DefaultAPIURL))
	rootCmd.PersistentFlags().StringVar(&flags.LogFile, "log-file", "", "Log file path, or - for stderr (env TCM_LOG_FILE)")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error (env TCM_LOG_LEVEL)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.setup(cmd, flags)
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		c.deps.Close()
	}
	rootCmd.RunE = c.UI.Execute

	// UI command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "ui",
		Short: "Open the interactive client",
		Long:  "Browse, filter and edit test cases and suites and view the dashboard in a terminal UI",
		Args:  cobra.NoArgs,
		RunE:  c.UI.Execute,
	})

	rootCmd.AddCommand(c.Cases.Command(flags))
	rootCmd.AddCommand(c.Suites.Command(flags))
	rootCmd.AddCommand(c.Users.Command(flags))

	// Dashboard command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "dashboard",
		Short: "Print test execution analytics",
		Args:  cobra.NoArgs,
		RunE:  c.Dashboard.Execute,
	})

	// Theme command
	rootCmd.AddCommand(&cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the display theme",
		Long:      "Without an argument prints the current theme; otherwise stores the new preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE:      c.Theme.Execute,
	})

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development backend",
		Long:  "Serve the testCases, testSuites and users REST resources from memory or MySQL",
		Args:  cobra.NoArgs,
		RunE:  c.Serve.Execute,
	}
	serveCmd.Flags().StringVar(&flags.ServeAddr, "addr", "", fmt.Sprintf("Listen address (default %s)", config.DefaultServeAddr))
	serveCmd.Flags().StringVar(&flags.StorageType, "storage", "", "Storage backend: memory or mysql (default memory)")
	serveCmd.Flags().StringVar(&flags.SeedFile, "seed", "", "JSON file in db.json layout to load on start")
	rootCmd.AddCommand(serveCmd)
}

// listFlags adds the list view flags to cmd
func listFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.Search, "search", "s", "", "Only rows whose title or description contains this text")
	cmd.Flags().IntVar(&flags.Page, "page", 1, "Page to show, starting at 1")
	cmd.Flags().IntVar(&flags.PageSize, "page-size", config.DefaultPageSize, "Rows per page (5, 10 or 15)")
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	var answer string
	if _, err := fmt.Fscanln(in, &answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}
