package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	currency "github.com/malusev998/currency-rates"
	"github.com/malusev998/currency-rates/services"
)

var errNoRates = errors.New("no rates available")

func overview(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:         "overview",
		Short:       "Print the rates of the configured currency pairs",
		Annotations: withDependencies,
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs := config.deps.OverviewPairs
			if len(pairs) == 0 {
				pairs = services.DefaultOverviewPairs
			}

			out := cmd.OutOrStdout()
			failed := 0

			for _, entry := range services.Overview(config.Ctx, config.deps.Rates, pairs) {
				label := fmt.Sprintf("%s (%s) -> %s (%s)",
					entry.Pair.Base, currency.Name(entry.Pair.Base),
					entry.Pair.Target, currency.Name(entry.Pair.Target),
				)

				if entry.Err != nil {
					failed++
					fmt.Fprintf(out, "%s: unavailable: %v\n", label, entry.Err)
					continue
				}

				fmt.Fprintf(out, "%s: %s\n", label, formatRate(entry.Rate))
			}

			if failed == len(pairs) {
				return errNoRates
			}

			return nil
		},
	}
}
