package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lookalike/internal/app"
)

func (c *CLI) newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [folders...]",
		Short: "Scan folders for near-duplicate images",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			var opts app.RunOptions
			opts.ConfigPath, _ = cmd.Flags().GetString("config")
			opts.CachePath, _ = cmd.Flags().GetString("cache")
			opts.Sensitivity, _ = cmd.Flags().GetString("sensitivity")
			opts.Workers, _ = cmd.Flags().GetInt("workers")
			opts.Extensions, _ = cmd.Flags().GetStringSlice("ext")
			opts.MinWidth, _ = cmd.Flags().GetInt("min-width")
			opts.MinHeight, _ = cmd.Flags().GetInt("min-height")
			opts.MaxWidth, _ = cmd.Flags().GetInt("max-width")
			opts.MaxHeight, _ = cmd.Flags().GetInt("max-height")
			opts.NoCache, _ = cmd.Flags().GetBool("no-cache")
			opts.OutputMode, _ = cmd.Flags().GetString("renderer")

			// If --ci is set, override the renderer to "linear"
			if ci, _ := cmd.Flags().GetBool("ci"); ci {
				opts.OutputMode = "linear"
			}

			// Only override recursion when the flag was given explicitly, so
			// the config file setting stays in effect otherwise.
			if cmd.Flags().Changed("recursive") {
				recursive, _ := cmd.Flags().GetBool("recursive")
				opts.Recursive = &recursive
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				c.logger.SetJSON(true)
			}

			result, err := c.app.Run(cmd.Context(), args, opts)

			// An interrupted scan still produced a partial result worth
			// showing; print whatever we have before surfacing the error.
			if result != nil {
				if printErr := printReport(cmd.OutOrStdout(), result, asJSON); printErr != nil && err == nil {
					err = printErr
				}
			}
			return err
		},
	}

	cmd.Flags().StringP("sensitivity", "s", "", "Matching sensitivity: high, medium or low")
	cmd.Flags().IntP("workers", "w", 0, "Number of fingerprint workers (default: one per core)")
	cmd.Flags().BoolP("recursive", "r", true, "Descend into subdirectories")
	cmd.Flags().StringSlice("ext", nil, "Image extensions to scan (default: common image formats)")
	cmd.Flags().Int("min-width", 0, "Skip images narrower than this many pixels")
	cmd.Flags().Int("min-height", 0, "Skip images shorter than this many pixels")
	cmd.Flags().Int("max-width", 0, "Skip images wider than this many pixels")
	cmd.Flags().Int("max-height", 0, "Skip images taller than this many pixels")
	cmd.Flags().String("cache", "", "Fingerprint cache location")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the fingerprint cache and recompute everything")
	cmd.Flags().String("config", "", "Config file location")
	cmd.Flags().StringP("renderer", "o", "auto", "Output mode: auto, tui, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --renderer=linear)")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	return cmd
}
