package errors

import "fmt"

// Common error messages for the shipnote CLI.
// These templates ensure consistent, actionable error messages.

// MissingReleaseFile creates an error when no release-marker file exists.
func MissingReleaseFile(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("release file not found: %s", path),
		"Create "+path+" with RELEASE_TYPE: patch|minor|major on the first line",
		"Describe the change on the following lines",
		"Or point release_file at another path in .shipnote/config.yml",
	)
}

// InvalidReleaseFile creates an error for a release file that fails to parse.
func InvalidReleaseFile(err error) *CLIError {
	return WrapWithMessage(err, Input,
		"invalid release file",
		"The first line must read exactly: RELEASE_TYPE: <patch|minor|major>",
		"Example:\n      RELEASE_TYPE: minor\n\n      Adds support for custom key bindings.",
	)
}

// InvalidBumpKind creates an error for an unknown bump kind argument.
func InvalidBumpKind(kind string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid bump kind: %s", kind),
		"shipnote bump <patch|minor|major> <version>",
		"Valid kinds: patch, minor, major",
	)
}

// VersionAssignmentError creates an error when the version cannot be read or
// rewritten in the configured version file.
func VersionAssignmentError(path, name string, err error) *CLIError {
	return WrapWithMessage(err, Input,
		fmt.Sprintf("cannot update %s in %s", name, path),
		fmt.Sprintf("Ensure %s contains exactly one line of the form: %s = \"X.Y.Z\"", path, name),
		"Or set version_file / version_name in .shipnote/config.yml",
	)
}

// MissingVersionFile creates an error when the configured version file does not exist.
func MissingVersionFile(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("version file not found: %s", path),
		"Set version_file in .shipnote/config.yml to the file holding your version",
		"Or create it with a line such as: Version = \"0.1.0\"",
	)
}

// MissingChangelog creates an error when the changelog does not exist yet.
func MissingChangelog(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog not found: %s", path),
		"Create an empty changelog for the first release: touch "+path,
		"Or set changelog_file in .shipnote/config.yml",
	)
}

// ChangelogNotWritable creates an error when the changelog cannot be updated.
func ChangelogNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot update changelog %s", path),
		"Check file permissions: ls -la "+path,
		"Create an empty file first if this is the initial release: touch "+path,
	)
}

// ConfigFileNotFound creates an error for missing config file.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Create .shipnote/config.yml or drop the --config flag",
	)
}

// ConfigParseError creates an error for invalid config file format.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML syntax errors",
		"Compare the keys against: shipnote config keys",
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'shipnote <command> --help' to see valid options",
	)
}

// InvalidDate creates an error for an unparseable --date value.
func InvalidDate(value string, err error) *CLIError {
	return WrapWithMessage(err, Argument,
		fmt.Sprintf("invalid release date %q", value),
		"Use a calendar date such as 2024-05-01 or \"May 1, 2024\"",
	)
}

// GitNotRepository creates an error when tagging is requested outside a git repository.
func GitNotRepository() *CLIError {
	return NewPrerequisiteError(
		"not a git repository",
		"Initialize with: git init",
		"Or run without --tag",
	)
}

// TagExists creates an error when the release tag is already present.
func TagExists(tag string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("tag already exists: %s", tag),
		"Check the current version in the version file",
		"Delete the stale tag with: git tag -d "+tag,
	)
}
