package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lookalike/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the fingerprint cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts app.CleanOptions
			opts.ConfigPath, _ = cmd.Flags().GetString("config")
			opts.CachePath, _ = cmd.Flags().GetString("cache")

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().String("cache", "", "Fingerprint cache location")
	cmd.Flags().String("config", "", "Config file location")

	return cmd
}
