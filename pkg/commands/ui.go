package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/meridian/pkg/config"
	"tableflip.dev/meridian/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the dashboard",
		Example: `
meridian ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	i := ui.UI{Config: cfg}
	return i.Do(cmd.Context())
}
