package commands

import (
	"github.com/spf13/cobra"
)

// New builds the root command. Running with no subcommand opens the
// dashboard.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meridian",
		Short: "Local and world time, weather, and currency side by side.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd)
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addLocations(topLevel)
	addRate(topLevel)
	addWeather(topLevel)
	addVersion(topLevel)
}
