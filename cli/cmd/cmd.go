package cmd

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	currency "github.com/malusev998/currency-rates"
	"github.com/malusev998/currency-rates/cache"
	"github.com/malusev998/currency-rates/services"
)

// usesDependencies marks the commands that need Build to run first.
const usesDependencies = "dependencies"

var withDependencies = map[string]string{usesDependencies: "true"}

type (
	Dependencies struct {
		Rates         *services.RateService
		Cache         *cache.RateCache
		Storage       currency.Storage
		Registry      *prometheus.Registry
		Logger        *zap.Logger
		RetryBudget   int
		OverviewPairs []currency.Pair
		ServerAddr    string
	}

	Config struct {
		Ctx   context.Context
		Build func(ctx context.Context, configFile string, debug bool) (*Dependencies, error)

		deps       *Dependencies
		debug      bool
		configFile string
	}
)

func Execute(config *Config) error {
	defer config.Close()

	return newRootCommand(config).Execute()
}

func newRootCommand(config *Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "currency-rates",
		Short:        "Exchange rates with a local cache",
		Version:      "v2.0.0",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := cmd.Annotations[usesDependencies]; !ok || config.deps != nil {
				return nil
			}

			deps, err := config.Build(config.Ctx, config.configFile, config.debug)
			if err != nil {
				return err
			}

			config.deps = deps

			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&config.debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&config.configFile, "config", "./config.yml", "Path to config file")

	rootCmd.AddCommand(
		rate(config),
		convert(config),
		overview(config),
		prefs(config),
		serve(config),
	)

	return rootCmd
}

// Close releases the storage opened by Build.
func (c *Config) Close() {
	if c.deps == nil {
		return
	}

	if c.deps.Storage != nil {
		if err := c.deps.Storage.Close(); err != nil && c.deps.Logger != nil {
			c.deps.Logger.Error("failed to close storage", zap.Error(err))
		}
	}

	if c.deps.Logger != nil {
		_ = c.deps.Logger.Sync()
	}
}
