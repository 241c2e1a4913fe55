// Package shared provides constants and types used across CLI files and
// commands.
package shared

import (
	"fmt"
)

// Exit codes for the shipnote CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates a release file, version or changelog failed validation
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingDependency indicates a required file or repository is missing
	ExitMissingDependency = 4
)

// Command group IDs for help output.
const (
	GroupGettingStarted = "getting-started"
	GroupRelease        = "release"
	GroupInspect        = "inspect"
	GroupConfiguration  = "configuration"
)

// ExitError carries a process exit code through cobra's error return.
// The message has already been printed when it is returned.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that makes main exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode returns the exit code for err: ExitSuccess for nil, the carried
// code for an *ExitError, ExitValidationFailed otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code
	}
	return ExitValidationFailed
}
