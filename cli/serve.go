package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quest-demos/api"
	"quest-demos/service"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			logger, err := cfg.NewLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			key, err := cfg.KeyParameters()
			if err != nil {
				return err
			}
			logger.Info("loaded key", zap.Stringer("key", key))

			demo := service.NewDemoService(key, cfg.ServiceOptions(), logger)
			server := api.NewServer(cfg, demo, logger)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
			defer stop()

			if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("server shutdown completed")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "listen port (overrides QUEST_PORT)")
	return cmd
}

