package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diaflow/internal/server"
)

// newServeCmd creates the serve command, which runs the HTTP API until
// interrupted.
func newServeCmd() *cobra.Command {
	var port int
	var offline bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runServe(c, port, offline)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default from config, else 8080)")
	cmd.Flags().BoolVar(&offline, "offline", false, "use built-in templates instead of the model")

	return cmd
}

func runServe(c *cobra.Command, port int, offline bool) error {
	ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	manager, err := newManager(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if err := manager.RefreshIndex(ctx); err != nil {
		return err
	}

	srv := server.New(server.Options{
		Port:      port,
		Manager:   manager,
		Generator: newGenerator(ctx, cfg, offline, logger),
		Logger:    logger,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
