package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	currency "github.com/malusev998/currency-rates"
)

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

func rate(config *Config) *cobra.Command {
	var force bool
	var retries int

	rateCmd := &cobra.Command{
		Use:         "rate <BASE> <TARGET>",
		Short:       "Print the exchange rate from BASE to TARGET",
		Annotations: withDependencies,
		Args:        cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := currency.NewPair(args[0], args[1])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("retries") {
				retries = config.deps.RetryBudget
			}

			rate, err := config.deps.Rates.GetRate(config.Ctx, pair, force, retries)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "1 %s = %s %s\n", pair.Base, formatRate(rate), pair.Target)

			return nil
		},
	}

	rateCmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the cache and ask the provider")
	rateCmd.Flags().IntVarP(&retries, "retries", "r", 1, "Extra fetch attempts after a failure")

	return rateCmd
}
