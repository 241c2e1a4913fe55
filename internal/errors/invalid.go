package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrInvalidInput is the single error kind for malformed text: a missing or
// duplicated assignment, a bad release-type marker, an unknown bump kind or an
// unparseable version. Filesystem failures never match it.
var ErrInvalidInput = stderrors.New("invalid input")

// InvalidInputError describes malformed input and where it came from.
type InvalidInputError struct {
	// Source names the input, usually a file path or "<string>".
	Source string
	// Message describes what is wrong with the input.
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
	return e.Message
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid creates an InvalidInputError with a formatted message.
func Invalid(source, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{
		Source:  source,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsInvalidInput returns true if err or anything it wraps is invalid input.
func IsInvalidInput(err error) bool {
	return stderrors.Is(err, ErrInvalidInput)
}

// Classify converts any error into a CLIError for display. Existing CLIErrors
// pass through, invalid input maps to the Input category and everything else
// (filesystem, git) is a runtime error.
func Classify(err error) *CLIError {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	if IsInvalidInput(err) {
		return Wrap(err, Input)
	}
	return Wrap(err, Runtime)
}
