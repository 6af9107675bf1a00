package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/meridian/pkg/runner/rate"
)

func addRate(topLevel *cobra.Command) {
	amount := 1.0
	cmd := &cobra.Command{
		Use:   "rate FROM TO",
		Short: "show the exchange rate for a currency pair",
		Example: `
meridian rate NZD USD
meridian rate NZD USD --amount 250
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := rate.Rate{From: args[0], To: args[1], Amount: amount}
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 1, "Amount to convert.")

	topLevel.AddCommand(cmd)
}
