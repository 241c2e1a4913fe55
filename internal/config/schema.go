package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Path        string          // Key name as written in config files
	Type        ConfigValueType // Expected value type for validation
	Description string          // Human-readable description for help text
	Default     interface{}     // Default value
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"project_name": {
		Path:        "project_name",
		Type:        TypeString,
		Description: "Project name in changelog headers (empty = directory name)",
		Default:     "",
	},
	"changelog_file": {
		Path:        "changelog_file",
		Type:        TypeString,
		Description: "Changelog prepended on each release",
		Default:     "CHANGELOG.md",
	},
	"release_file": {
		Path:        "release_file",
		Type:        TypeString,
		Description: "Release marker file starting with RELEASE_TYPE:",
		Default:     "RELEASE.md",
	},
	"version_file": {
		Path:        "version_file",
		Type:        TypeString,
		Description: "File holding the version assignment",
		Default:     "internal/build/version.go",
	},
	"version_name": {
		Path:        "version_name",
		Type:        TypeString,
		Description: "Name of the version assignment",
		Default:     "Version",
	},
	"quote_version": {
		Path:        "quote_version",
		Type:        TypeBool,
		Description: "Write the new version as a double-quoted string",
		Default:     true,
	},
	"tag_prefix": {
		Path:        "tag_prefix",
		Type:        TypeString,
		Description: "Prefix of release tags",
		Default:     "v",
	},
	"create_tag": {
		Path:        "create_tag",
		Type:        TypeBool,
		Description: "Commit the release files and tag that commit",
		Default:     false,
	},
	"keep_release_file": {
		Path:        "keep_release_file",
		Type:        TypeBool,
		Description: "Keep the release file after a release",
		Default:     false,
	},
	"history_file": {
		Path:        "history_file",
		Type:        TypeString,
		Description: "YAML log of past releases",
		Default:     ".shipnote/history.yml",
	},
	"max_history_entries": {
		Path:        "max_history_entries",
		Type:        TypeInt,
		Description: "Maximum number of history entries to retain",
		Default:     100,
	},
}

// SortedKeys returns the KnownKeys schemas ordered by key name.
func SortedKeys() []ConfigKeySchema {
	keys := make([]ConfigKeySchema, 0, len(KnownKeys))
	for _, schema := range KnownKeys {
		keys = append(keys, schema)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Path < keys[j].Path })
	return keys
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after type inference and validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

// validateAgainstSchema validates a value against a specific schema.
func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeInt:
		return parseIntValue(value)
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

// parseBoolValue parses and validates a boolean value.
func parseBoolValue(value string) (ParsedValue, error) {
	switch strings.ToLower(value) {
	case "true":
		return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
	case "false":
		return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
	default:
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
}

// parseIntValue parses and validates an integer value.
func parseIntValue(value string) (ParsedValue, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
	}
	return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
}
