// Package cache keeps fetched exchange rates and the user's currency
// selection in a currency.Storage.
//
// A rate for USD to PHP is stored under "USD-PHP" with its fetch time, in
// epoch seconds, under "USD-PHP-timestamp". Entries are never deleted; once
// older than the TTL they are only returned by Any lookups.
package cache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	currency "github.com/malusev998/currency-rates"
)

const DefaultTTL = 24 * time.Hour

// Mode selects whether expired entries are returned.
type Mode int

const (
	Fresh Mode = iota
	Any
)

func (m Mode) String() string {
	if m == Any {
		return "any"
	}

	return "fresh"
}

type (
	RateCache struct {
		storage currency.Storage
		ttl     time.Duration
		now     func() time.Time
		logger  *zap.Logger
	}

	Option func(*RateCache)
)

// WithClock replaces time.Now for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *RateCache) {
		c.now = now
	}
}

func New(storage currency.Storage, ttl time.Duration, logger *zap.Logger, opts ...Option) *RateCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	c := &RateCache{
		storage: storage,
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *RateCache) TTL() time.Duration {
	return c.ttl
}

func timestampKey(pair currency.Pair) string {
	return pair.Key() + "-timestamp"
}

func formatTimestamp(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixMicro())/1e6, 'f', 6, 64)
}

func parseTimestamp(value string) (time.Time, error) {
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return time.Time{}, err
	}

	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
	}

	return time.UnixMicro(int64(math.Round(seconds * 1e6))), nil
}

func (c *RateCache) read(ctx context.Context, key string) (string, bool, error) {
	value, err := c.storage.Get(ctx, key)

	if errors.Is(err, currency.ErrKeyNotFound) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}

	return value, true, nil
}

// Get returns the entry for pair. With Fresh an entry older than the TTL is
// reported as missing; with Any it is returned regardless of age. Values
// that cannot be parsed are reported as missing.
func (c *RateCache) Get(ctx context.Context, pair currency.Pair, mode Mode) (currency.CachedRate, bool, error) {
	logger := c.logger.With(zap.Stringer("pair", pair), zap.Stringer("mode", mode))

	rawRate, ok, err := c.read(ctx, pair.Key())
	if err != nil || !ok {
		logger.Debug("cache miss")
		return currency.CachedRate{}, false, err
	}

	rawTimestamp, ok, err := c.read(ctx, timestampKey(pair))
	if err != nil || !ok {
		logger.Debug("cache entry has no timestamp")
		return currency.CachedRate{}, false, err
	}

	rate, err := strconv.ParseFloat(rawRate, 64)
	if err != nil || rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		logger.Warn("ignoring unusable cached rate", zap.String("value", rawRate))
		return currency.CachedRate{}, false, nil
	}

	fetchedAt, err := parseTimestamp(rawTimestamp)
	if err != nil {
		logger.Warn("ignoring unusable cache timestamp", zap.String("value", rawTimestamp))
		return currency.CachedRate{}, false, nil
	}

	entry := currency.CachedRate{Rate: rate, FetchedAt: fetchedAt}

	if mode == Fresh && !entry.IsFresh(c.now(), c.ttl) {
		logger.Debug("cache entry expired", zap.Time("fetched_at", fetchedAt))
		return currency.CachedRate{}, false, nil
	}

	logger.Debug("cache hit", zap.Float64("rate", rate), zap.Time("fetched_at", fetchedAt))

	return entry, true, nil
}

// Set replaces the entry for pair with rate fetched at now.
func (c *RateCache) Set(ctx context.Context, pair currency.Pair, rate float64, now time.Time) error {
	err := c.storage.Set(ctx, map[string]string{
		pair.Key():         strconv.FormatFloat(rate, 'g', -1, 64),
		timestampKey(pair): formatTimestamp(now),
	})

	if err != nil {
		return fmt.Errorf("saving rate for %s: %w", pair, err)
	}

	c.logger.Debug("saved rate", zap.Stringer("pair", pair), zap.Float64("rate", rate))

	return nil
}

// GetPreference returns the currency code selected for slot. A stored code
// that is not a valid currency code is reported as missing.
func (c *RateCache) GetPreference(ctx context.Context, slot currency.Slot) (string, bool, error) {
	value, ok, err := c.read(ctx, slot.Key())
	if err != nil || !ok {
		return "", false, err
	}

	code, err := currency.NormalizeCode(value)
	if err != nil {
		c.logger.Warn("ignoring invalid stored currency", zap.String("key", slot.Key()), zap.String("value", value))
		return "", false, nil
	}

	return code, true, nil
}

func (c *RateCache) SetPreference(ctx context.Context, slot currency.Slot, code string) error {
	normalized, err := currency.NormalizeCode(code)
	if err != nil {
		return err
	}

	if err := c.storage.Set(ctx, map[string]string{slot.Key(): normalized}); err != nil {
		return fmt.Errorf("saving %s: %w", slot.Key(), err)
	}

	c.logger.Debug("saved currency", zap.String("key", slot.Key()), zap.String("code", normalized))

	return nil
}
