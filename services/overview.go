package services

import (
	"context"
	"sync"

	currency "github.com/malusev998/currency-rates"
)

var DefaultOverviewPairs = []currency.Pair{
	{Base: "USD", Target: "PHP"},
	{Base: "PHP", Target: "HKD"},
	{Base: "HKD", Target: "PHP"},
}

type OverviewEntry struct {
	Pair currency.Pair
	Rate float64
	Err  error
}

// Overview looks up every pair concurrently and returns the results in the
// order of pairs once all of them have finished.
func Overview(ctx context.Context, rates currency.RateProvider, pairs []currency.Pair) []OverviewEntry {
	var wg sync.WaitGroup

	entries := make([]OverviewEntry, len(pairs))

	wg.Add(len(pairs))
	for i, pair := range pairs {
		go func(i int, pair currency.Pair) {
			defer wg.Done()

			rate, err := rates.Rate(ctx, pair, false)
			entries[i] = OverviewEntry{Pair: pair, Rate: rate, Err: err}
		}(i, pair)
	}

	wg.Wait()

	return entries
}
