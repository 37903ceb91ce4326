// =============================================================================
// SolarWinds CSV to SNMP Config Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which runs the conversion
// pipeline for a single export file.
//
// COMMAND USAGE:
//   swsnmp generate <export-file> [flags]
//
// FLAGS:
//   -o, --output        : Path to write the YAML file (default: stdout)
//   -t, --tag-columns   : Columns to derive tags from (column[:tagname],...)
//   -u, --user          : SNMPv3 username override
//   -a, --authprotocol  : SNMPv3 authentication protocol override
//   -p, --privprotocol  : SNMPv3 privacy protocol override
//   -y, --yes           : Overwrite an existing output file without asking
//
// PROCESSING PIPELINE:
//   1. Validate the option values
//   2. Detect the input encoding (CSV only; XLSX is always UTF-8)
//   3. Parse and sanitize the table
//   4. Tally device subtypes and keep the SNMP rows
//   5. Build one polling instance per row with an address
//   6. Assemble the document and serialize it to the chosen destination
//
// EXIT BEHAVIOR:
//   Missing input file, decode failures and malformed ports exit non-zero.
//   A declined overwrite confirmation exits zero: the operator said no, and
//   that is not an error.
//
// =============================================================================

package cmd

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/encoding"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/generator"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/lgr"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/xlsxparser"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/yamlwriter"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// outputPath is the YAML destination; empty means stdout.
var outputPath string

// tagColumns is the raw tag-column specification.
var tagColumns string

// snmpUser is the SNMPv3 username override.
var snmpUser string

// authProtocol is the SNMPv3 authentication protocol override.
var authProtocol string

// privProtocol is the SNMPv3 privacy protocol override.
var privProtocol string

// assumeYes skips the overwrite confirmation prompt.
var assumeYes bool

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate <export-file>",
	Short: "Convert a SolarWinds export into a Datadog SNMP configuration",
	Long: `The generate command reads a SolarWinds node-inventory export, keeps the
SNMP-managed nodes, and emits a Datadog SNMP integration configuration with
one polling instance per node.

Credentials are emitted as PLACEHOLDER_* tokens unless overridden, so the
generated file is safe to commit and review before the real secrets go in.

Input format is chosen by extension: .xlsx is read as a workbook, anything
else as CSV with automatic encoding detection.`,

	Args: cobra.ExactArgs(1),

	// RunE is preferred over Run for commands that can fail, as it allows
	// Cobra to handle the error gracefully.
	RunE: func(cmd *cobra.Command, args []string) error {
		// Cobra would otherwise print the usage text after pipeline
		// errors, burying the diagnostic.
		cmd.SilenceUsage = true
		return runGenerate(args[0])
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the generate command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(
		&outputPath,
		"output",
		"o",
		"",
		"Path to write the YAML configuration file (default: print to stdout)",
	)

	generateCmd.Flags().StringVarP(
		&tagColumns,
		"tag-columns",
		"t",
		config.DefaultTagColumns,
		"Comma-separated columns to use for tags, each 'Column' or 'Column:tagname'",
	)

	generateCmd.Flags().StringVarP(
		&snmpUser,
		"user",
		"u",
		"",
		"SNMPv3 username to use instead of PLACEHOLDER_USER",
	)

	generateCmd.Flags().StringVarP(
		&authProtocol,
		"authprotocol",
		"a",
		"",
		"SNMPv3 authentication protocol (MD5, SHA, SHA224, SHA256, SHA384, SHA512)",
	)

	generateCmd.Flags().StringVarP(
		&privProtocol,
		"privprotocol",
		"p",
		"",
		"SNMPv3 privacy protocol (DES, AES, AES192, AES192C, AES256, AES256C)",
	)

	generateCmd.Flags().BoolVarP(
		&assumeYes,
		"yes",
		"y",
		false,
		"Overwrite an existing output file without asking",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runGenerate runs the conversion pipeline for one export file.
func runGenerate(inputPath string) error {
	log := lgr.New(verbose)
	defer log.Sync()

	opts := &config.Options{
		Output:       outputPath,
		TagColumns:   tagColumns,
		User:         snmpUser,
		AuthProtocol: authProtocol,
		PrivProtocol: privProtocol,
		AssumeYes:    assumeYes,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 1: PARSE THE EXPORT
	// =========================================================================

	parsed, err := parseExport(inputPath, log)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: FILTER AND TALLY
	// =========================================================================

	kept, tally := generator.Filter(parsed.Records)

	log.Infof("Read and sanitized %d rows with %s:", parsed.TotalRows, generator.ColumnSubtype)
	for _, subtype := range sortedKeys(tally) {
		log.Infof("  - %s: %d", subtype, tally[subtype])
	}

	// =========================================================================
	// STEP 3: BUILD THE DOCUMENT
	// =========================================================================

	result, err := generator.Build(kept, opts)
	if err != nil {
		return err
	}

	if result.SkippedNoAddress > 0 {
		log.Warnf("Skipped %d rows due to missing %s", result.SkippedNoAddress, generator.ColumnIPAddress)
	}
	log.Debugf("Built %d instances", len(result.Document.Instances))

	// =========================================================================
	// STEP 4: SERIALIZE
	// =========================================================================

	data, err := yamlwriter.Render(result.Document)
	if err != nil {
		return err
	}

	return writeDestination(opts, data, log)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// parseExport reads the export file into records, choosing the parser by
// file extension.
func parseExport(inputPath string, log *zap.SugaredLogger) (*csvparser.Result, error) {
	if strings.EqualFold(filepath.Ext(inputPath), ".xlsx") {
		log.Infof("Reading XLSX workbook %s", inputPath)
		return xlsxparser.Parse(inputPath, log)
	}

	log.Infof("Attempting to detect encoding for %s...", inputPath)
	charset, confidence, err := encoding.Detect(inputPath)
	if err != nil {
		return nil, err
	}
	if confidence > 0 {
		log.Infof("Detected encoding %s with confidence %d", charset, confidence)
	} else {
		log.Infof("Could not detect encoding confidently, falling back to %s", charset)
	}

	return csvparser.Parse(inputPath, charset, log)
}

// writeDestination sends the rendered YAML to stdout or to the output file,
// honoring the overwrite confirmation.
func writeDestination(opts *config.Options, data []byte, log *zap.SugaredLogger) error {
	if opts.Output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := utils.EnsureParentDir(opts.Output); err != nil {
		return err
	}

	if utils.Exists(opts.Output) {
		if !opts.AssumeYes && !utils.ConfirmOverwrite(opts.Output, os.Stdin, os.Stderr) {
			// Declined overwrite is a clean exit, not an error.
			log.Info("Operation cancelled.")
			return nil
		}

		backupPath, err := utils.BackupFile(opts.Output)
		if err != nil {
			return err
		}
		log.Infof("Backed up existing file to %s", backupPath)
	}

	if err := utils.WriteFile(opts.Output, data); err != nil {
		return err
	}

	log.Infof("Configuration written to %s", opts.Output)
	return nil
}

// sortedKeys returns the map keys sorted by name.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
