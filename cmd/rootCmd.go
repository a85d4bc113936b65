package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd either writes a config template (--config-gen) or performs a
// transfer run driven by an existing config (--config).
var rootCmd = &cobra.Command{
	Use:   "scan-smuggler",
	Short: "Copy completed scan results from tenable.io to tenable.sc",
	Long: "Downloads the latest completed run of each configured tenable.io scan, compresses it, " +
		"and imports it into a tenable.sc repository. Intended to run from a timer or cron entry.",
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgConfigGen {
			return generateConfig(cmd.OutOrStdout(), defaultConfigFileName)
		}
		return runSmuggle(cmd)
	},
}

// runSmuggle loads the config, builds both clients, and processes every scan
// ID. The report, when configured, is written even if the run fails.
func runSmuggle(cmd *cobra.Command) (err error) {
	cfg, err := loadConfig(cfgConfigFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	logger := newLogger(cmd.ErrOrStderr(), cfg.Smuggler.LogLevel)
	cutoff := cutoffFor(nowFunc(), cfg.TenableIO.Age)
	writeHeader(out, cfg, cutoff)

	src, err := newSourceFunc(cfg.TenableIO, logger)
	if err != nil {
		return err
	}
	dst, err := newDestinationFunc(cfg.TenableSC, logger)
	if err != nil {
		return err
	}

	rep := newYAMLReport(cutoff)
	logger = logger.With().Str("run_id", rep.RunID).Logger()
	if path := cfg.Smuggler.ReportFile; path != "" {
		defer func() {
			if werr := writeReport(path, rep); werr != nil {
				logger.Error().Err(werr).Str("path", path).Msg("report not written")
				if err == nil {
					err = werr
				}
			}
		}()
	}

	return smuggle(cmd.Context(), cfg, cutoff, src, dst, out, logger, rep)
}
