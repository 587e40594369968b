package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	currency "github.com/malusev998/currency-rates"
	"github.com/malusev998/currency-rates/cache"
	"github.com/malusev998/currency-rates/cli/cmd"
	"github.com/malusev998/currency-rates/fetchers"
	"github.com/malusev998/currency-rates/metrics"
	"github.com/malusev998/currency-rates/services"
	"github.com/malusev998/currency-rates/storage"
)

func createLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()

	if !debug {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return config.Build()
}

func createStorage(ctx context.Context, config *Config) (currency.Storage, error) {
	return storage.NewStorage(ctx, config.StorageProvider, config.StorageConfig)
}

func createDependencies(ctx context.Context, configFile string, debug bool) (*cmd.Dependencies, error) {
	if err := loadConfig(configFile); err != nil {
		return nil, err
	}

	config, err := getConfig()
	if err != nil {
		return nil, err
	}

	logger, err := createLogger(debug)
	if err != nil {
		return nil, err
	}

	st, err := createStorage(ctx, config)
	if err != nil {
		return nil, err
	}

	logger.Debug("storage ready", zap.String("provider", string(config.StorageProvider)))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	rateCache := cache.New(st, config.TTL, logger.Named("cache"))
	fetcher := fetchers.NewFreeCurrencyAPIFetcher(config.Fetcher, logger.Named("fetcher"))
	rates := services.NewRateService(
		fetcher,
		rateCache,
		logger.Named("rates"),
		services.WithRetryBudget(config.RetryBudget),
		services.WithMetrics(metrics.New(registry)),
	)

	return &cmd.Dependencies{
		Rates:         rates,
		Cache:         rateCache,
		Storage:       st,
		Registry:      registry,
		Logger:        logger,
		RetryBudget:   config.RetryBudget,
		OverviewPairs: config.OverviewPairs,
		ServerAddr:    config.ServerAddr,
	}, nil
}
