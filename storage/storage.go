package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	currency "github.com/malusev998/currency-rates"
)

type (
	Provider   string
	BaseConfig struct {
		Migrate bool
	}
	FileConfig struct {
		Path string
	}
	MySQLConfig struct {
		BaseConfig
		ConnectionString string
		TableName        string
	}
	PostgresConfig struct {
		BaseConfig
		ConnectionString string
		TableName        string
	}
	MongoDBConfig struct {
		ConnectionString string
		Database         string
		Collection       string
	}
)

const (
	File     Provider = "file"
	Memory   Provider = "memory"
	MySQL    Provider = "mysql"
	Postgres Provider = "postgres"
	MongoDB  Provider = "mongodb"

	DefaultTableName = "currency_rates_store"
)

var (
	ErrStorageNotFound = errors.New("storage is not found")
	ErrInvalidConfig   = errors.New("storage config does not match provider")
)

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(str) {
	case "file":
		return File, nil
	case "memory":
		return Memory, nil
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "mongodb", "mongo":
		return MongoDB, nil
	}

	return "", fmt.Errorf("value %s is not valid Provider", str)
}

func NewStorage(ctx context.Context, provider Provider, config interface{}) (currency.Storage, error) {
	switch provider {
	case Memory:
		return NewMemoryStorage(), nil
	case File:
		c, ok := config.(FileConfig)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, provider)
		}
		st, err := NewFileStorage(c.Path)
		if err != nil {
			return nil, err
		}
		return st, nil
	case MySQL:
		c, ok := config.(MySQLConfig)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, provider)
		}
		st, err := NewMySQLStorage(ctx, c)
		if err != nil {
			return nil, err
		}
		return st, nil
	case Postgres:
		c, ok := config.(PostgresConfig)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, provider)
		}
		st, err := NewPostgresStorage(ctx, c)
		if err != nil {
			return nil, err
		}
		return st, nil
	case MongoDB:
		c, ok := config.(MongoDBConfig)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, provider)
		}
		st, err := NewMongoStorage(ctx, c)
		if err != nil {
			return nil, err
		}
		return st, nil
	}

	return nil, ErrStorageNotFound
}
