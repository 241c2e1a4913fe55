package config

// GetDefaultConfigTemplate returns a commented config file written by
// `shipnote config init`.
func GetDefaultConfigTemplate() string {
	return `# shipnote configuration
# Priority: SHIPNOTE_* env vars > .shipnote/config.yml > ~/.config/shipnote/config.yml > defaults

# Project name used in changelog headers (empty = directory name)
project_name: ""

# Files
changelog_file: CHANGELOG.md          # Prepended with one entry per release
release_file: RELEASE.md              # Starts with RELEASE_TYPE: patch|minor|major
version_file: internal/build/version.go
version_name: Version                 # Name of the single version assignment
quote_version: true                   # Write Version = "1.2.3" instead of Version = 1.2.3

# Tagging
tag_prefix: v
create_tag: false                     # Commit the release files and tag the commit

# Release file handling
keep_release_file: false              # Keep RELEASE.md after a release

# History
history_file: .shipnote/history.yml
max_history_entries: 100              # Oldest entries are pruned past this limit
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"project_name":      "",
		"changelog_file":    "CHANGELOG.md",
		"release_file":      "RELEASE.md",
		"version_file":      "internal/build/version.go",
		"version_name":      "Version",
		"quote_version":     true,
		"tag_prefix":        "v",
		"create_tag":        false,
		"keep_release_file": false,
		// history_file is relative to the project root unless absolute or ~/.
		"history_file":        ".shipnote/history.yml",
		"max_history_entries": 100,
	}
}
