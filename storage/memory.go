package storage

import (
	"context"
	"sync"

	currency "github.com/malusev998/currency-rates"
)

var _ currency.Storage = &MemoryStorage{}

// MemoryStorage keeps values for the lifetime of the process only.
type MemoryStorage struct {
	mutex sync.RWMutex
	data  map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		data: make(map[string]string),
	}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return "", currency.ErrKeyNotFound
	}

	return value, nil
}

func (m *MemoryStorage) Set(_ context.Context, values map[string]string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for key, value := range values {
		m.data[key] = value
	}

	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
