package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tcm/internal/config"
)

// Server runs the development backend over HTTP
type Server struct {
	httpServer *http.Server
	repo       Repository
	logger     *zap.Logger
}

// NewServer creates a server for repo listening on cfg.ServeAddr
func NewServer(cfg *config.Config, repo Repository, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.ServeAddr,
			Handler:      NewHandler(repo, logger).Router(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		repo:   repo,
		logger: logger,
	}
}

// OpenRepository returns the repository selected by cfg.StorageType
func OpenRepository(ctx context.Context, cfg *config.Config) (Repository, error) {
	switch cfg.StorageType {
	case "memory":
		return NewMemoryRepository(), nil
	case "mysql":
		return NewMySQLRepository(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("development backend listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("development backend stopped")
	return s.repo.Close()
}
