package currency

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key is not found in storage")

// Storage is a durable string key/value substrate. Each key is written
// atomically. The memory, file and SQL backends write all of values or none;
// MongoStorage writes keys in sorted order and stops at the first failure.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, values map[string]string) error
	Close() error
}
