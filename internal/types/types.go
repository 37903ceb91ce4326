// =============================================================================
// SolarWinds CSV to SNMP Config Generator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (Record)
//   - generator (Instance construction)
//   - yamlwriter (Document serialization)
//
// =============================================================================

package types

import (
	"gopkg.in/yaml.v3"
)

// =============================================================================
// PLACEHOLDER TOKENS
// =============================================================================
// Literal stand-in credential values. The operator is expected to replace
// these before the generated configuration goes to production.

const (
	PlaceholderCommunityString = "PLACEHOLDER_COMMUNITY_STRING"
	PlaceholderUser            = "PLACEHOLDER_USER"
	PlaceholderAuthProtocol    = "PLACEHOLDER_AUTHPROTOCOL"
	PlaceholderAuthKey         = "PLACEHOLDER_AUTHKEY"
	PlaceholderPrivProtocol    = "PLACEHOLDER_PRIVPROTOCOL"
	PlaceholderPrivKey         = "PLACEHOLDER_PRIVKEY"
)

// =============================================================================
// RECORD TYPE
// =============================================================================

// Record represents a single sanitized row from the input table.
// Keys are the sanitized column headers, values are the sanitized cells.
// A missing column and an empty cell are treated the same way by consumers.
type Record map[string]string

// =============================================================================
// TAG TYPE
// =============================================================================

// Tag is a single classification label attached to an instance.
// It is rendered in the output as "name:value".
type Tag struct {
	// Name is the tag name, lowercase, restricted to [A-Za-z0-9_\-:./].
	Name string

	// Value is the tag value, restricted to the same character set.
	Value string
}

// String renders the tag in its wire form.
func (t Tag) String() string {
	return t.Name + ":" + t.Value
}

// =============================================================================
// AUTH CONFIG VARIANTS
// =============================================================================

// AuthConfig is the per-version authentication variant of an instance.
// Exactly one concrete variant is attached to each instance:
//   - CommunityAuth for SNMP v1 and v2
//   - UserAuth for SNMP v3
//
// The variant is flattened into the instance mapping at serialization time,
// so the output never nests an "auth" sub-mapping and never mixes the
// community-string fields with the v3 user fields.
type AuthConfig interface {
	// yamlFields returns the ordered key/value pairs this variant
	// contributes to the serialized instance mapping.
	yamlFields() []authField
}

// authField is one serialized key/value pair of an auth variant.
type authField struct {
	key   string
	value string
}

// CommunityAuth is the SNMP v1/v2 authentication variant.
type CommunityAuth struct {
	// CommunityString is the community string placeholder.
	CommunityString string
}

func (a CommunityAuth) yamlFields() []authField {
	return []authField{
		{key: "community_string", value: a.CommunityString},
	}
}

// UserAuth is the SNMP v3 authentication variant.
type UserAuth struct {
	// User is the SNMPv3 security name.
	User string

	// AuthProtocol is the authentication protocol (MD5, SHA, SHA256, ...).
	AuthProtocol string

	// AuthKey is the authentication passphrase placeholder.
	AuthKey string

	// PrivProtocol is the privacy protocol (DES, AES, AES256, ...).
	PrivProtocol string

	// PrivKey is the privacy passphrase placeholder.
	PrivKey string
}

func (a UserAuth) yamlFields() []authField {
	return []authField{
		{key: "user", value: a.User},
		{key: "authProtocol", value: a.AuthProtocol},
		{key: "authKey", value: a.AuthKey},
		{key: "privProtocol", value: a.PrivProtocol},
		{key: "privKey", value: a.PrivKey},
	}
}

// =============================================================================
// INSTANCE TYPE
// =============================================================================

// Instance is one monitored device's polling configuration.
type Instance struct {
	// IPAddress is the polling address. Always non-empty; records without
	// an address are dropped before an Instance is constructed.
	IPAddress string

	// Port is the SNMP agent port. Defaults to 161 when the source record
	// does not specify one.
	Port int

	// SNMPVersion is the SNMP protocol version (1, 2 or 3).
	SNMPVersion int

	// Auth is the version-dependent authentication variant.
	Auth AuthConfig

	// Tags are the classification labels for this instance, in the order
	// the tag-column specification listed them.
	Tags []Tag

	// MinCollectionInterval is the minimum collection interval in seconds.
	// Zero means the source record supplied no usable value and the key is
	// omitted from the output entirely.
	MinCollectionInterval int
}

// MarshalYAML renders the instance as a mapping with a stable key order:
// ip_address, port, snmp_version, the auth variant fields, tags, and the
// optional min_collection_interval. The auth variant is flattened in place.
func (i Instance) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	if err := appendPair(node, "ip_address", i.IPAddress); err != nil {
		return nil, err
	}
	if err := appendPair(node, "port", i.Port); err != nil {
		return nil, err
	}
	if err := appendPair(node, "snmp_version", i.SNMPVersion); err != nil {
		return nil, err
	}

	// Flatten the auth variant into the instance mapping.
	for _, field := range i.Auth.yamlFields() {
		if err := appendPair(node, field.key, field.value); err != nil {
			return nil, err
		}
	}

	tags := make([]string, len(i.Tags))
	for idx, tag := range i.Tags {
		tags[idx] = tag.String()
	}
	if err := appendPair(node, "tags", tags); err != nil {
		return nil, err
	}

	if i.MinCollectionInterval > 0 {
		if err := appendPair(node, "min_collection_interval", i.MinCollectionInterval); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// appendPair appends a key scalar and an encoded value to a mapping node.
func appendPair(mapping *yaml.Node, key string, value interface{}) error {
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}

	valueNode := &yaml.Node{}
	if err := valueNode.Encode(value); err != nil {
		return err
	}

	mapping.Content = append(mapping.Content, keyNode, valueNode)
	return nil
}

// =============================================================================
// DOCUMENT TYPE
// =============================================================================

// InitConfig holds the fixed init-time settings of the generated check.
type InitConfig struct {
	// Loader selects the Datadog check loader.
	Loader string `yaml:"loader"`

	// UseDeviceIDAsHostname makes the agent report each device under its
	// device identifier instead of the agent host name.
	UseDeviceIDAsHostname bool `yaml:"use_device_id_as_hostname"`
}

// Document is the full generated configuration file: the fixed init section
// followed by the instance list. Instance order matches the order of the
// surviving input records.
type Document struct {
	InitConfig InitConfig `yaml:"init_config"`
	Instances  []Instance `yaml:"instances"`
}

// NewDocument wraps an instance list in a Document with the fixed
// init-section values.
func NewDocument(instances []Instance) Document {
	if instances == nil {
		// A nil slice would serialize as null; the output always carries
		// a list, even an empty one.
		instances = []Instance{}
	}
	return Document{
		InitConfig: InitConfig{
			Loader:                "core",
			UseDeviceIDAsHostname: true,
		},
		Instances: instances,
	}
}
