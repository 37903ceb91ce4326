// =============================================================================
// SolarWinds CSV to SNMP Config Generator - Generator Module
// =============================================================================
//
// This module contains the core conversion logic: filtering the parsed
// records down to SNMP-managed nodes and mapping each one to a polling
// instance.
//
// GENERATION PIPELINE:
//   1. Tally records by device subtype and keep only SNMP rows
//   2. For each kept row:
//      a. Drop it if it carries no IP address (counted, non-fatal)
//      b. Derive tags from the configured tag columns
//      c. Parse the SNMP version (permissive, defaults to 2)
//      d. Attach the version-dependent auth variant
//      e. Parse the agent port (strict, defaults to 161 only when absent)
//      f. Parse the poll interval (optional, positive values only)
//   3. Wrap the instances in the fixed init_config document
//
// ERROR POLICY:
//   The port is part of the device's reachability, so a malformed port is a
//   data-integrity failure and aborts the run. Version and poll interval
//   are advisory and degrade silently to their defaults.
//
// =============================================================================

package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/sanitize"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/types"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================
// Column names as they appear in stock SolarWinds node exports. Column
// presence is checked defensively everywhere; no other schema is assumed.

const (
	// ColumnSubtype carries the monitoring protocol category of a row.
	ColumnSubtype = "ObjectSubType"

	// ColumnIPAddress carries the polling address.
	ColumnIPAddress = "IP_Address"

	// ColumnVersion carries the SNMP protocol version.
	ColumnVersion = "SNMPVersion"

	// ColumnPort carries the SNMP agent port.
	ColumnPort = "AgentPort"

	// ColumnPollInterval carries the node's polling interval in seconds.
	ColumnPollInterval = "PollInterval"
)

// TargetSubtype is the device subtype this generator emits instances for.
const TargetSubtype = "SNMP"

// UnknownSubtype is the tally bucket for records with no subtype value.
const UnknownSubtype = "Unknown"

// DefaultPort is the SNMP agent port used when the record supplies none.
const DefaultPort = 161

// DefaultVersion is the SNMP version used when the record's version is
// missing, unparsable or out of range.
const DefaultVersion = 2

// reservedTags are tag names with special meaning to the agent. Selecting
// one as a tag name gets it prefixed with "sw_" to avoid the collision.
var reservedTags = map[string]bool{
	"host":    true,
	"device":  true,
	"source":  true,
	"service": true,
	"env":     true,
	"version": true,
	"team":    true,
}

// =============================================================================
// INVALID PORT ERROR
// =============================================================================

// InvalidPortError reports a non-integer agent port. Unlike the version and
// poll-interval fields, a malformed port aborts the whole run.
type InvalidPortError struct {
	// Address is the device's IP address, for the diagnostic.
	Address string

	// Value is the offending cell value.
	Value string
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid %s value %q for device %s: not an integer", ColumnPort, e.Value, e.Address)
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of a generation run.
type Result struct {
	// Document is the assembled configuration document.
	Document types.Document

	// SkippedNoAddress is the number of SNMP records dropped because they
	// carried no IP address.
	SkippedNoAddress int
}

// =============================================================================
// ROW FILTER
// =============================================================================

// Filter tallies records by device subtype and returns the SNMP ones.
//
// PARAMETERS:
//   - records: All sanitized records from the table reader, in file order.
//
// RETURNS:
//   - The records whose subtype equals TargetSubtype, in input order.
//   - The per-subtype frequency tally over all records. Records with a
//     missing or empty subtype are tallied as UnknownSubtype and excluded.
func Filter(records []types.Record) ([]types.Record, map[string]int) {
	var kept []types.Record
	tally := make(map[string]int)

	for _, record := range records {
		subtype := record[ColumnSubtype]
		if subtype == "" {
			subtype = UnknownSubtype
		}
		tally[subtype]++

		if subtype == TargetSubtype {
			kept = append(kept, record)
		}
	}

	return kept, tally
}

// =============================================================================
// DOCUMENT GENERATION
// =============================================================================

// Build maps the filtered records to polling instances and assembles the
// configuration document.
//
// PARAMETERS:
//   - records: The SNMP records, in input order.
//   - opts: The run options (credential overrides, tag-column spec).
//
// RETURNS:
//   - A Result holding the document and the skip count.
//   - An *InvalidPortError if any record carries a non-integer port. No
//     partial document is returned in that case.
func Build(records []types.Record, opts *config.Options) (*Result, error) {
	tagColumns := config.ParseTagColumns(opts.TagColumns)

	result := &Result{}
	instances := make([]types.Instance, 0, len(records))

	for _, record := range records {
		// Records without an address cannot be polled at all. Dropping
		// them is routine, so it is counted rather than treated as an
		// error.
		address := record[ColumnIPAddress]
		if address == "" {
			result.SkippedNoAddress++
			continue
		}

		version := parseVersion(record)

		port, err := parsePort(record, address)
		if err != nil {
			return nil, err
		}

		instances = append(instances, types.Instance{
			IPAddress:             address,
			Port:                  port,
			SNMPVersion:           version,
			Auth:                  buildAuth(version, opts),
			Tags:                  buildTags(record, tagColumns),
			MinCollectionInterval: parseInterval(record),
		})
	}

	result.Document = types.NewDocument(instances)
	return result, nil
}

// buildTags derives the tag list for one record from the tag-column spec.
//
// For each spec entry whose column exists and is non-empty, both the tag
// name and the cell value go through the strict tag sanitizer, reserved
// names get the "sw_" prefix, and the pair is kept only if both sides are
// still non-empty. Entries producing identical tags are all kept; the spec
// order is the tag order.
func buildTags(record types.Record, tagColumns []config.TagColumn) []types.Tag {
	var tags []types.Tag

	for _, col := range tagColumns {
		value, exists := record[col.Column]
		if !exists || value == "" {
			continue
		}

		name := sanitize.Tag(col.TagName)
		value = sanitize.Tag(value)

		if reservedTags[name] {
			name = "sw_" + name
		}

		if name != "" && value != "" {
			tags = append(tags, types.Tag{Name: name, Value: value})
		}
	}

	return tags
}

// parseVersion reads the SNMP version permissively: only a cell that parses
// as exactly 1, 2 or 3 overrides the default. Anything else falls back to
// DefaultVersion without raising an error.
func parseVersion(record types.Record) int {
	raw := strings.TrimSpace(record[ColumnVersion])
	if raw == "" {
		return DefaultVersion
	}

	version, err := strconv.Atoi(raw)
	if err != nil || version < 1 || version > 3 {
		return DefaultVersion
	}

	return version
}

// buildAuth returns the auth variant for the given version. Credential
// overrides from the options replace the placeholder tokens; the keys stay
// placeholders either way, since SolarWinds never exports them.
func buildAuth(version int, opts *config.Options) types.AuthConfig {
	if version == 3 {
		auth := types.UserAuth{
			User:         types.PlaceholderUser,
			AuthProtocol: types.PlaceholderAuthProtocol,
			AuthKey:      types.PlaceholderAuthKey,
			PrivProtocol: types.PlaceholderPrivProtocol,
			PrivKey:      types.PlaceholderPrivKey,
		}
		if opts.User != "" {
			auth.User = opts.User
		}
		if opts.AuthProtocol != "" {
			auth.AuthProtocol = opts.AuthProtocol
		}
		if opts.PrivProtocol != "" {
			auth.PrivProtocol = opts.PrivProtocol
		}
		return auth
	}

	return types.CommunityAuth{CommunityString: types.PlaceholderCommunityString}
}

// parsePort reads the agent port. An absent or empty cell yields
// DefaultPort; a present cell must parse as an integer or the run aborts.
func parsePort(record types.Record, address string) (int, error) {
	raw := strings.TrimSpace(record[ColumnPort])
	if raw == "" {
		return DefaultPort, nil
	}

	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &InvalidPortError{Address: address, Value: raw}
	}

	return port, nil
}

// parseInterval reads the poll interval. Only a cell that parses as a
// strictly positive integer produces a value; everything else yields zero,
// which omits the key from the output.
func parseInterval(record types.Record) int {
	raw := strings.TrimSpace(record[ColumnPollInterval])
	if raw == "" {
		return 0
	}

	interval, err := strconv.Atoi(raw)
	if err != nil || interval <= 0 {
		return 0
	}

	return interval
}
