package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/meridian/pkg/config"
	"tableflip.dev/meridian/pkg/runner/weather"
)

func addWeather(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "weather [CODE]",
		Short: "show conditions for a tracked location",
		Example: `
meridian weather
meridian weather BOS
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			w := weather.Weather{Config: cfg}
			if len(args) == 1 {
				w.Code = args[0]
			}
			return w.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
