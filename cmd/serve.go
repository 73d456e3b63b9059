package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/career-compass/internal/compass"
	"github.com/sells-group/career-compass/internal/server"
)

var servePort int

// shutdownTimeout bounds in-flight analyses during shutdown. A report can
// take most of a minute to generate.
const shutdownTimeout = 90 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		analyzer, err := compass.New(ctx, cfg)
		if err != nil {
			return eris.Wrap(err, "serve: init analyzer")
		}

		srv := server.New(analyzer, cfg.Server, version)

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("configuration loaded",
			zap.String("search_provider", cfg.Search.Provider),
			zap.String("generation_provider", cfg.Generation.Provider),
			zap.Bool("rate_limit", cfg.Server.RateLimit.Enabled),
		)
		return srv.Start(cfg.Server.Port)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
