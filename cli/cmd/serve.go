package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/malusev998/currency-rates/transport"
)

const shutdownTimeout = 5 * time.Second

func serve(config *Config) *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:         "serve",
		Short:       "Serve rates over HTTP",
		Annotations: withDependencies,
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && config.deps.ServerAddr != "" {
				addr = config.deps.ServerAddr
			}

			logger := config.deps.Logger.Named("http")
			server := &http.Server{
				Addr:    addr,
				Handler: transport.NewServer(config.deps.Rates, config.deps.Registry, logger),
			}

			errs := make(chan error, 1)

			go func() {
				logger.Info("listening", zap.String("addr", addr))
				errs <- server.ListenAndServe()
			}()

			select {
			case err := <-errs:
				return err
			case <-config.Ctx.Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			logger.Info("shutting down")

			if err := server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")

	return serveCmd
}
