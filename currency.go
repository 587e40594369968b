package currency

import "context"

type (
	// Fetcher performs a single remote lookup of the rate for a pair.
	Fetcher interface {
		Fetch(ctx context.Context, pair Pair) (float64, error)
	}
)
