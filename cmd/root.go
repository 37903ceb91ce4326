// =============================================================================
// SolarWinds CSV to SNMP Config Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'generate', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (swsnmp)
//   ├── generateCmd (swsnmp generate)
//   └── versionCmd (swsnmp version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	// Use is the one-line usage message.
	Use: "swsnmp",

	// Short is a short description shown in the 'help' output.
	Short: "Generate Datadog SNMP YAML configuration from SolarWinds exports",

	// Long is a longer description shown in the 'help <command>' output.
	Long: `swsnmp converts a SolarWinds node-inventory export (CSV or XLSX) into a
Datadog SNMP integration configuration file with one polling instance per
SNMP-managed node.

Key Features:
  - Statistical encoding detection for CSV exports of unknown provenance
  - Mojibake repair and strict tag sanitization
  - Per-device tags derived from configurable export columns
  - SNMPv3 credential overrides with placeholder tokens by default

Example Usage:
  swsnmp generate nodes.csv                      # Print YAML to stdout
  swsnmp generate nodes.csv -o conf.d/snmp.yaml  # Write to a file
  swsnmp generate nodes.xlsx -t Caption,Location:site`,

	// Run prints the help message when no subcommand is given.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the rootCmd.
func Execute() {
	// Execute the root command. If there's an error, print it and exit.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
