package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	currency "github.com/malusev998/currency-rates"
	"github.com/malusev998/currency-rates/cache"
	"github.com/malusev998/currency-rates/fetchers"
	"github.com/malusev998/currency-rates/services"
	"github.com/malusev998/currency-rates/storage"
)

type Config struct {
	Fetcher         fetchers.Config
	TTL             time.Duration
	RetryBudget     int
	StorageProvider storage.Provider
	StorageConfig   interface{}
	ServerAddr      string
	OverviewPairs   []currency.Pair
}

func setDefaults() {
	viper.SetDefault("fetcher.url", fetchers.FreeCurrencyAPIURL)
	viper.SetDefault("fetcher.apikey", "")
	viper.SetDefault("fetcher.timeout", fetchers.DefaultTimeout)
	viper.SetDefault("cache.ttl", cache.DefaultTTL)
	viper.SetDefault("cache.retries", services.DefaultRetryBudget)
	viper.SetDefault("storage.provider", string(storage.File))
	viper.SetDefault("storage.file.path", defaultStorePath())
	viper.SetDefault("storage.mysql.user", "")
	viper.SetDefault("storage.mysql.password", "")
	viper.SetDefault("storage.mysql.addr", "localhost:3306")
	viper.SetDefault("storage.mysql.db", "currency")
	viper.SetDefault("storage.mysql.table", storage.DefaultTableName)
	viper.SetDefault("storage.postgres.dsn", "")
	viper.SetDefault("storage.postgres.table", storage.DefaultTableName)
	viper.SetDefault("storage.mongodb.uri", "mongodb://localhost:27017")
	viper.SetDefault("storage.mongodb.db", "currency")
	viper.SetDefault("storage.mongodb.collection", storage.DefaultTableName)
	viper.SetDefault("storage.migrate", true)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("overview.pairs", []string{"USD-PHP", "PHP-HKD", "HKD-PHP"})
}

func defaultStorePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}

	return filepath.Join(dir, "currency-rates", "store.json")
}

// loadConfig reads .env, configFile and CURRENCY_RATES_* variables. Missing
// files are not an error; every key has a default.
func loadConfig(configFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error while loading .env: %w", err)
	}

	setDefaults()

	viper.SetEnvPrefix("CURRENCY_RATES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile == "" {
		return nil
	}

	absolutePath, err := filepath.Abs(configFile)
	if err != nil {
		return err
	}

	if _, err := os.Stat(absolutePath); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	viper.SetConfigFile(absolutePath)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error while reading in the config file: %w", err)
	}

	return nil
}

func getMysqlDSN() string {
	mysqlDriverConfig := mysql.NewConfig()
	mysqlDriverConfig.User = viper.GetString("storage.mysql.user")
	mysqlDriverConfig.Passwd = viper.GetString("storage.mysql.password")
	mysqlDriverConfig.Addr = viper.GetString("storage.mysql.addr")
	mysqlDriverConfig.Net = "tcp"
	mysqlDriverConfig.DBName = viper.GetString("storage.mysql.db")

	return mysqlDriverConfig.FormatDSN()
}

func parsePairs(values []string) ([]currency.Pair, error) {
	pairs := make([]currency.Pair, 0, len(values))

	for _, value := range values {
		codes := strings.Split(value, "-")

		if len(codes) != 2 {
			return nil, fmt.Errorf("value %s is not valid currency pair", value)
		}

		pair, err := currency.NewPair(codes[0], codes[1])
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, pair)
	}

	return pairs, nil
}

func getConfig() (*Config, error) {
	provider, err := storage.ConvertToProviderFromString(viper.GetString("storage.provider"))
	if err != nil {
		return nil, err
	}

	pairs, err := parsePairs(viper.GetStringSlice("overview.pairs"))
	if err != nil {
		return nil, fmt.Errorf("error while parsing overview.pairs: %w", err)
	}

	baseConfig := storage.BaseConfig{
		Migrate: viper.GetBool("storage.migrate"),
	}

	storageConfigs := map[storage.Provider]interface{}{
		storage.File: storage.FileConfig{
			Path: viper.GetString("storage.file.path"),
		},
		storage.MySQL: storage.MySQLConfig{
			BaseConfig:       baseConfig,
			ConnectionString: getMysqlDSN(),
			TableName:        viper.GetString("storage.mysql.table"),
		},
		storage.Postgres: storage.PostgresConfig{
			BaseConfig:       baseConfig,
			ConnectionString: viper.GetString("storage.postgres.dsn"),
			TableName:        viper.GetString("storage.postgres.table"),
		},
		storage.MongoDB: storage.MongoDBConfig{
			ConnectionString: viper.GetString("storage.mongodb.uri"),
			Database:         viper.GetString("storage.mongodb.db"),
			Collection:       viper.GetString("storage.mongodb.collection"),
		},
	}

	return &Config{
		Fetcher: fetchers.Config{
			URL:     viper.GetString("fetcher.url"),
			APIKey:  viper.GetString("fetcher.apikey"),
			Timeout: viper.GetDuration("fetcher.timeout"),
		},
		TTL:             viper.GetDuration("cache.ttl"),
		RetryBudget:     viper.GetInt("cache.retries"),
		StorageProvider: provider,
		StorageConfig:   storageConfigs[provider],
		ServerAddr:      viper.GetString("server.addr"),
		OverviewPairs:   pairs,
	}, nil
}
