package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/currency-rates"
	"github.com/malusev998/currency-rates/storage"
)

func TestFileStorage_SurvivesReopen(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	st, err := storage.NewFileStorage(path)
	assert.NoError(err)

	_, err = st.Get(ctx, "USD-PHP")
	assert.Equal(currency.ErrKeyNotFound, err)

	assert.NoError(st.Set(ctx, map[string]string{
		"USD-PHP":           "56.78",
		"USD-PHP-timestamp": "1721649600.000000",
		"primaryCurrency":   "USD",
	}))
	assert.NoError(st.Close())

	reopened, err := storage.NewFileStorage(path)
	assert.NoError(err)

	value, err := reopened.Get(ctx, "USD-PHP")
	assert.NoError(err)
	assert.Equal("56.78", value)

	value, err = reopened.Get(ctx, "primaryCurrency")
	assert.NoError(err)
	assert.Equal("USD", value)

	entries, err := os.ReadDir(filepath.Dir(path))
	assert.NoError(err)
	assert.Len(entries, 1)
}

func TestFileStorage_InvalidContent(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	path := filepath.Join(t.TempDir(), "store.json")

	assert.NoError(os.WriteFile(path, []byte("{not json"), 0o600))

	st, err := storage.NewFileStorage(path)
	assert.Nil(st)
	assert.Error(err)
}

func TestFileStorage_EmptyPath(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	st, err := storage.NewFileStorage("")
	assert.Nil(st)
	assert.ErrorIs(err, storage.ErrInvalidConfig)
}
