package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	currency "github.com/malusev998/currency-rates"
)

var _ currency.Storage = &FileStorage{}

// FileStorage persists every value in a single JSON document. Writes go to a
// temporary file that replaces the document, so a crash never leaves it half
// written.
type FileStorage struct {
	mutex sync.RWMutex
	path  string
	data  map[string]string
}

func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: file path is empty", ErrInvalidConfig)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	f := &FileStorage{
		path: path,
		data: make(map[string]string),
	}

	content, err := os.ReadFile(path)

	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}

	if err != nil {
		return nil, err
	}

	if len(content) == 0 {
		return f, nil
	}

	if err := json.Unmarshal(content, &f.data); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return f, nil
}

func (f *FileStorage) Get(_ context.Context, key string) (string, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	value, ok := f.data[key]
	if !ok {
		return "", currency.ErrKeyNotFound
	}

	return value, nil
}

func (f *FileStorage) Set(_ context.Context, values map[string]string) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	next := make(map[string]string, len(f.data)+len(values))
	for key, value := range f.data {
		next[key] = value
	}
	for key, value := range values {
		next[key] = value
	}

	if err := f.write(next); err != nil {
		return err
	}

	f.data = next

	return nil
}

func (f *FileStorage) write(data map[string]string) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), f.path)
}

func (f *FileStorage) Close() error {
	return nil
}
