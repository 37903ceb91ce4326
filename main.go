// =============================================================================
// SolarWinds CSV to SNMP Config Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the SolarWinds-to-Datadog SNMP configuration
// generator CLI. It initializes the Cobra CLI framework and delegates command
// execution to the cmd package.
//
// USAGE:
//   swsnmp generate <export-file>   - Convert a SolarWinds export to SNMP YAML
//   swsnmp version                  - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
