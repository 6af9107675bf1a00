package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/meridian/pkg/config"
	"tableflip.dev/meridian/pkg/runner/locations"
)

func addLocations(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "list tracked locations and their current times",
		Example: `
meridian locations
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			l := locations.Locations{Config: cfg}
			return l.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
