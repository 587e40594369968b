package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	currency "github.com/malusev998/currency-rates"
	"github.com/malusev998/currency-rates/cache"
	"github.com/malusev998/currency-rates/metrics"
)

const DefaultRetryBudget = 1

var _ currency.RateProvider = &RateService{}

type (
	RateCache interface {
		Get(ctx context.Context, pair currency.Pair, mode cache.Mode) (currency.CachedRate, bool, error)
		Set(ctx context.Context, pair currency.Pair, rate float64, now time.Time) error
	}

	// RateService answers rate requests from the cache, the fetcher or, when
	// every fetch attempt failed, from an expired cache entry.
	RateService struct {
		fetcher     currency.Fetcher
		cache       RateCache
		logger      *zap.Logger
		metrics     *metrics.Metrics
		now         func() time.Time
		retryBudget int
	}

	Option func(*RateService)

	Result struct {
		Rate float64
		Err  error
	}
)

// WithRetryBudget sets the number of extra fetch attempts Rate makes.
func WithRetryBudget(budget int) Option {
	return func(s *RateService) {
		s.retryBudget = budget
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *RateService) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *RateService) {
		s.now = now
	}
}

func NewRateService(fetcher currency.Fetcher, rateCache RateCache, logger *zap.Logger, opts ...Option) *RateService {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &RateService{
		fetcher:     fetcher,
		cache:       rateCache,
		logger:      logger,
		now:         time.Now,
		retryBudget: DefaultRetryBudget,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *RateService) Rate(ctx context.Context, pair currency.Pair, forceFetch bool) (float64, error) {
	return s.GetRate(ctx, pair, forceFetch, s.retryBudget)
}

// GetRate returns a fresh cached rate unless forceFetch is set, otherwise
// fetches it, retrying immediately up to retryBudget more times. If every
// attempt fails a cached rate of any age is returned instead of the error.
func (s *RateService) GetRate(ctx context.Context, pair currency.Pair, forceFetch bool, retryBudget int) (float64, error) {
	logger := s.logger.With(
		zap.String("call_id", uuid.NewString()),
		zap.Stringer("pair", pair),
		zap.Bool("force_fetch", forceFetch),
	)

	if retryBudget < 0 {
		retryBudget = 0
	}

	if !forceFetch {
		entry, ok, err := s.cache.Get(ctx, pair, cache.Fresh)

		if err != nil {
			logger.Warn("cache lookup failed", zap.Error(err))
		}

		if ok {
			s.metrics.CacheHit()
			logger.Debug("serving cached rate", zap.Float64("rate", entry.Rate))
			return entry.Rate, nil
		}

		s.metrics.CacheMiss()
	}

	var lastErr error

	for attempt := 1; ; attempt++ {
		rate, err := s.fetcher.Fetch(ctx, pair)

		if err == nil {
			s.metrics.FetchSucceeded()
			logger.Debug("fetched rate", zap.Int("attempt", attempt), zap.Float64("rate", rate))

			if err := s.cache.Set(ctx, pair, rate, s.now()); err != nil {
				logger.Error("failed to cache rate", zap.Error(err))
			}

			return rate, nil
		}

		lastErr = err
		s.metrics.FetchFailed(currency.KindOf(err).String())
		logger.Warn("fetch attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("retries_left", retryBudget),
			zap.Error(err),
		)

		if retryBudget == 0 {
			break
		}

		retryBudget--
	}

	entry, ok, err := s.cache.Get(ctx, pair, cache.Any)

	if err != nil {
		logger.Warn("stale cache lookup failed", zap.Error(err))
	}

	if ok {
		s.metrics.StaleFallback()
		logger.Info("serving stale rate",
			zap.Float64("rate", entry.Rate),
			zap.Time("fetched_at", entry.FetchedAt),
			zap.NamedError("fetch_error", lastErr),
		)
		return entry.Rate, nil
	}

	s.metrics.Failure()
	logger.Error("rate unavailable", zap.Error(lastErr))

	return 0, lastErr
}

// GetRateAsync runs GetRate on its own goroutine. The returned channel
// receives exactly one Result and is then closed.
func (s *RateService) GetRateAsync(ctx context.Context, pair currency.Pair, forceFetch bool, retryBudget int) <-chan Result {
	results := make(chan Result, 1)

	go func() {
		defer close(results)

		rate, err := s.GetRate(ctx, pair, forceFetch, retryBudget)
		results <- Result{Rate: rate, Err: err}
	}()

	return results
}
