package cli

import "github.com/ariel-frischer/shipnote/internal/cli/shared"

// Exit codes for the shipnote CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitValidationFailed indicates invalid input such as a malformed release file
	ExitValidationFailed = shared.ExitValidationFailed

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitMissingDependencies indicates a required file or repository is missing
	ExitMissingDependencies = shared.ExitMissingDependency
)

// NewExitError returns an error that makes main exit with code. The
// message has already been printed.
func NewExitError(code int) error {
	return shared.NewExitError(code)
}
