package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "SCAN_SMUGGLER"

// init registers the two mutually exclusive flags. Exactly one is required;
// SCAN_SMUGGLER_CONFIG stands in for --config when neither is given.
func init() {
	rootCmd.Flags().StringVar(&cfgConfigFile, "config", "", "INI config file (or set "+envPrefix+"_CONFIG)")
	rootCmd.Flags().BoolVar(&cfgConfigGen, "config-gen", false, "Generate a new INI config file ("+defaultConfigFileName+") in the current directory")
	rootCmd.MarkFlagsMutuallyExclusive("config", "config-gen")
	rootCmd.MarkFlagsOneRequired("config", "config-gen")
	_ = rootCmd.MarkFlagFilename("config", "ini")

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	cobra.OnInitialize(func() {
		flags := rootCmd.Flags()
		if flags.Changed("config") || flags.Changed("config-gen") {
			return
		}
		// Setting through the flag set marks it changed, which keeps the
		// flag group checks meaningful.
		if v := viper.GetString("config"); v != "" {
			_ = flags.Set("config", v)
		}
	})
}
