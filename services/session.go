package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	currency "github.com/malusev998/currency-rates"
)

type (
	PreferenceStore interface {
		GetPreference(ctx context.Context, slot currency.Slot) (string, bool, error)
		SetPreference(ctx context.Context, slot currency.Slot, code string) error
	}

	// Session tracks the primary and secondary currencies the user converts
	// between and keeps them in a PreferenceStore.
	Session struct {
		mutex     sync.RWMutex
		rates     currency.RateProvider
		prefs     PreferenceStore
		logger    *zap.Logger
		primary   string
		secondary string
	}
)

// LoadSession reads the stored selection. Slots with nothing usable stored
// fall back to their default currency.
func LoadSession(ctx context.Context, rates currency.RateProvider, prefs PreferenceStore, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		rates:  rates,
		prefs:  prefs,
		logger: logger,
	}

	for _, slot := range currency.Slots {
		code, ok, err := prefs.GetPreference(ctx, slot)

		if err != nil {
			logger.Warn("failed to load currency", zap.String("slot", string(slot)), zap.Error(err))
		}

		if !ok {
			code = slot.DefaultCode()
		}

		s.set(slot, code)
	}

	return s
}

func (s *Session) set(slot currency.Slot, code string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if slot == currency.Secondary {
		s.secondary = code
		return
	}

	s.primary = code
}

func (s *Session) Primary() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.primary
}

func (s *Session) Secondary() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.secondary
}

// Pair is the primary to secondary direction.
func (s *Session) Pair() currency.Pair {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return currency.Pair{Base: s.primary, Target: s.secondary}
}

// Select stores code for slot and returns the rate for the new pair.
func (s *Session) Select(ctx context.Context, slot currency.Slot, code string) (float64, error) {
	normalized, err := currency.NormalizeCode(code)
	if err != nil {
		return 0, err
	}

	if err := s.prefs.SetPreference(ctx, slot, normalized); err != nil {
		return 0, err
	}

	s.set(slot, normalized)
	s.logger.Info("currency selected", zap.String("slot", string(slot)), zap.String("code", normalized))

	return s.rates.Rate(ctx, s.Pair(), false)
}

// ConvertPrimary converts an amount in the primary currency to the secondary one.
func (s *Session) ConvertPrimary(ctx context.Context, amount string) (string, error) {
	return s.convert(ctx, s.Pair(), amount)
}

func (s *Session) ConvertSecondary(ctx context.Context, amount string) (string, error) {
	return s.convert(ctx, s.Pair().Reverse(), amount)
}

func (s *Session) convert(ctx context.Context, pair currency.Pair, amount string) (string, error) {
	rate, err := s.rates.Rate(ctx, pair, false)
	if err != nil {
		return "", err
	}

	return Convert(amount, rate), nil
}
