package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	currency "github.com/malusev998/currency-rates"
	"github.com/malusev998/currency-rates/services"
)

var errInvalidAmount = errors.New("amount must be a number")

func convert(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:         "convert <AMOUNT> <BASE> <TARGET>",
		Short:       "Convert AMOUNT of BASE into TARGET",
		Annotations: withDependencies,
		Args:        cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := args[0]

			if services.Convert(amount, 1) == "" {
				return fmt.Errorf("%w: %q", errInvalidAmount, amount)
			}

			pair, err := currency.NewPair(args[1], args[2])
			if err != nil {
				return err
			}

			rate, err := config.deps.Rates.Rate(config.Ctx, pair, false)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", amount, pair.Base, services.Convert(amount, rate), pair.Target)

			return nil
		},
	}
}
