// =============================================================================
// SolarWinds CSV to SNMP Config Generator - YAML Writer Module
// =============================================================================
//
// This module renders the assembled document as YAML suitable for dropping
// into the agent's conf.d directory:
//
//   init_config:
//     loader: core
//     use_device_id_as_hostname: true
//   instances:
//     - ip_address: 10.0.0.5
//       port: 161
//       snmp_version: 2
//       community_string: PLACEHOLDER_COMMUNITY_STRING
//       tags:
//         - caption:Router1
//
// Keys appear in insertion order (the Instance type controls its own key
// order via MarshalYAML) and unicode characters are preserved unescaped,
// which yaml.v3 does natively.
//
// =============================================================================

package yamlwriter

import (
	"bytes"
	"fmt"

	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/types"
	"gopkg.in/yaml.v3"
)

// Render serializes the document as block-style YAML with two-space
// indentation.
func Render(doc types.Document) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to render YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize YAML: %w", err)
	}

	return buf.Bytes(), nil
}
