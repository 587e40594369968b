package currency

import "context"

type (
	// RateProvider is the contract consumers use to obtain a rate.
	RateProvider interface {
		Rate(ctx context.Context, pair Pair, forceFetch bool) (float64, error)
	}
)
