// =============================================================================
// SolarWinds CSV to SNMP Config Generator - Options Module
// =============================================================================
//
// This module holds the run options for a single conversion and the parsing
// of the tag-column specification string.
//
// TAG COLUMN SPECIFICATION:
//   A comma-separated list of column specs, each either "Column" or
//   "Column:tagname". When no tag name is given, the lowercased column name
//   is used. Example: "Caption,Location:site" produces tags named "caption"
//   and "site".
//
// VALIDATION:
//   The SNMPv3 credential overrides are constrained to the protocol names
//   the Datadog agent accepts. Validation runs once, before the pipeline
//   touches the input file.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultTagColumns is the tag-column specification used when the operator
// supplies none. Caption and Location are present in every stock SolarWinds
// node export.
const DefaultTagColumns = "Caption,Location"

// =============================================================================
// OPTIONS STRUCTURE
// =============================================================================

// Options holds everything a single conversion run needs beyond the input
// file path.
type Options struct {
	// Output is the path of the YAML file to write. Empty means print the
	// document to stdout.
	Output string

	// TagColumns is the raw tag-column specification string.
	TagColumns string

	// User replaces the PLACEHOLDER_USER token in SNMPv3 instances.
	User string

	// AuthProtocol replaces the PLACEHOLDER_AUTHPROTOCOL token.
	// Must be one of the protocols the agent accepts.
	AuthProtocol string `validate:"omitempty,oneof=MD5 SHA SHA224 SHA256 SHA384 SHA512"`

	// PrivProtocol replaces the PLACEHOLDER_PRIVPROTOCOL token.
	PrivProtocol string `validate:"omitempty,oneof=DES AES AES192 AES192C AES256 AES256C"`

	// AssumeYes skips the overwrite confirmation prompt.
	AssumeYes bool
}

// Validate checks the option values that are constrained to fixed sets.
func (o *Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid value for %s: %q is not an accepted protocol name",
				strings.ToLower(verrs[0].Field()), verrs[0].Value())
		}
		return err
	}
	return nil
}

// =============================================================================
// TAG COLUMN SPECIFICATION
// =============================================================================

// TagColumn is one parsed entry of the tag-column specification.
type TagColumn struct {
	// Column is the source column name, exactly as it appears in the input
	// header.
	Column string

	// TagName is the tag name to emit, already lowercased.
	TagName string
}

// ParseTagColumns parses a tag-column specification string into its ordered
// entries. The order of the entries determines the order of the produced
// tags. Blank entries are dropped.
func ParseTagColumns(spec string) []TagColumn {
	var columns []TagColumn

	for _, colSpec := range strings.Split(spec, ",") {
		name, tag, found := strings.Cut(colSpec, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if found {
			tag = strings.ToLower(strings.TrimSpace(tag))
		}
		if tag == "" {
			tag = strings.ToLower(name)
		}

		columns = append(columns, TagColumn{Column: name, TagName: tag})
	}

	return columns
}
