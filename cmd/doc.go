// Package cmd implements the scan-smuggler command-line interface.
//
// One invocation either generates a tenable.ini template (--config-gen) or
// reads an existing one (--config) and, for each configured scan ID, moves the
// latest completed tenable.io run into a tenable.sc repository:
//
//	history -> export (.nessus) -> zip -> upload/import -> delete temp files
//
// rootCmd.go wires cobra, loadConfig.go decodes the INI file through viper,
// and processScan.go holds the per-scan state machine. The remote APIs live in
// internal/tio and internal/tsc.
package cmd
