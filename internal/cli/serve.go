package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opsdata/opschat/internal/chat"
	"github.com/opsdata/opschat/internal/server"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the opschat HTTP API",
		Long: `Start the HTTP API that answers natural language questions about the
operational database. Sessions live in memory and die with the process.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func runServe(verbose bool) error {
	logger := newLogger(verbose)

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	agent, loader, cleanup, err := buildAgent(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	// Load the catalog up front: a service that cannot see the schema has
	// nothing to offer.
	if _, err := loader.Load(ctx); err != nil {
		return err
	}

	h := &server.Handlers{
		Sessions: chat.NewRegistry(agent, logger),
		AI:       agent,
		Catalog:  loader,
		DevMode:  cfg.DevMode,
		Logger:   logger,
	}

	srv, err := server.NewServer(server.ServerDeps{
		Handlers: h,
		Config: server.ServerConfig{
			Addr:    cfg.APIAddr,
			DevMode: cfg.DevMode,
			APIKey:  cfg.APIKey,
		},
	})
	if err != nil {
		return err
	}

	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
		_ = srv.Shutdown(context.Background())
	}()

	logger.WithField("addr", cfg.APIAddr).Info("api server starting")
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return srv.WaitClosed(context.Background())
}
