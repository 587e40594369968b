package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	currency "github.com/malusev998/currency-rates"
	"github.com/malusev998/currency-rates/services"
)

func prefs(config *Config) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change the selected currencies",
	}

	get := &cobra.Command{
		Use:         "get",
		Annotations: withDependencies,
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := services.LoadSession(config.Ctx, config.deps.Rates, config.deps.Cache, config.deps.Logger)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "primary: %s (%s)\n", session.Primary(), currency.Name(session.Primary()))
			fmt.Fprintf(out, "secondary: %s (%s)\n", session.Secondary(), currency.Name(session.Secondary()))

			return nil
		},
	}

	set := &cobra.Command{
		Use:         "set <primary|secondary> <CODE>",
		Annotations: withDependencies,
		Args:        cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := currency.ConvertToSlotFromString(args[0])
			if err != nil {
				return err
			}

			session := services.LoadSession(config.Ctx, config.deps.Rates, config.deps.Cache, config.deps.Logger)

			rate, err := session.Select(config.Ctx, slot, args[1])
			if err != nil {
				return err
			}

			pair := session.Pair()
			fmt.Fprintf(cmd.OutOrStdout(), "1 %s = %s %s\n", pair.Base, formatRate(rate), pair.Target)

			return nil
		},
	}

	prefsCmd.AddCommand(get, set)

	return prefsCmd
}
