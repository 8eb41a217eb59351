package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tcm/internal/devserver"
)

// ServeCommand runs the development backend
type ServeCommand struct {
	deps *Deps
}

// NewServeCommand creates a new ServeCommand
func NewServeCommand(deps *Deps) *ServeCommand {
	return &ServeCommand{deps: deps}
}

// Execute runs the command until interrupted
func (sc *ServeCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := sc.deps.Config
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := devserver.OpenRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.StorageType, err)
	}

	if cfg.SeedFile != "" {
		n, err := devserver.SeedFile(ctx, repo, cfg.SeedFile)
		if err != nil {
			_ = repo.Close()
			return err
		}
		sc.deps.Logger.Info("seeded development backend", zap.Int("records", n), zap.String("file", cfg.SeedFile))
	}

	color.Green("✓ Serving %s storage on http://%s", cfg.StorageType, cfg.ServeAddr)
	color.White("  Press Ctrl+C to stop")
	return devserver.NewServer(cfg, repo, sc.deps.Logger).Run(ctx)
}
