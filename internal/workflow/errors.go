package workflow

import (
	"errors"
	"fmt"
)

// Step names a stage of planning or executing a release.
type Step string

const (
	StepReleaseFile Step = "release file"
	StepVersion     Step = "version file"
	StepChangelog   Step = "changelog"
	StepVerify      Step = "verify"
	StepCleanup     Step = "cleanup"
	StepCommit      Step = "commit"
	StepTag         Step = "tag"
)

// ErrNotRepository is returned when tagging is requested outside a git
// repository.
var ErrNotRepository = errors.New("not a git repository")

// StepError records which step failed and on which file.
type StepError struct {
	Step Step
	Path string
	Err  error
}

func (e *StepError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Step, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As compatibility
func (e *StepError) Unwrap() error {
	return e.Err
}

func stepError(step Step, path string, err error) *StepError {
	return &StepError{Step: step, Path: path, Err: err}
}

// FailedStep returns the step err came from, or "" if it did not come from
// a release step.
func FailedStep(err error) Step {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step
	}
	return ""
}
