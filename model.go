package currency

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidCurrencyCode = errors.New("currency code must be three letters")

type (
	// Pair is an ordered conversion direction, Base to Target.
	Pair struct {
		Base   string `json:"base"`
		Target string `json:"target"`
	}

	CachedRate struct {
		Rate      float64   `json:"rate"`
		FetchedAt time.Time `json:"fetched_at"`
	}
)

// NormalizeCode trims and upper-cases code and checks it is an ISO-like
// three letter code.
func NormalizeCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	if len(normalized) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, code)
	}

	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, code)
		}
	}

	return normalized, nil
}

func NewPair(base, target string) (Pair, error) {
	b, err := NormalizeCode(base)
	if err != nil {
		return Pair{}, err
	}

	t, err := NormalizeCode(target)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Base: b, Target: t}, nil
}

// Key identifies the pair in storage, e.g. "USD-PHP".
func (p Pair) Key() string {
	return p.Base + "-" + p.Target
}

func (p Pair) String() string {
	return p.Key()
}

func (p Pair) Reverse() Pair {
	return Pair{Base: p.Target, Target: p.Base}
}

// IsFresh reports whether the entry is younger than ttl at now.
func (c CachedRate) IsFresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.FetchedAt) < ttl
}
