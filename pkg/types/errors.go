package types

import (
	"errors"
	"fmt"
)

// Process exit codes shared by all three stages.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ConfigError is a missing or invalid invocation input. Commands print
// usage alongside it and the process exits with ExitUsage.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

func NewConfigError(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// DependencyError means a required external tool or service is missing
// or failed. The message names the dependency.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("dependency %s unavailable", e.Dependency)
	}
	return fmt.Sprintf("dependency %s unavailable: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

func NewDependencyError(dependency string, err error) *DependencyError {
	return &DependencyError{Dependency: dependency, Err: err}
}

// VerifyError means the check itself ran fine but the target did not meet
// the expected condition.
type VerifyError struct {
	Check    string
	Expected string
	Observed string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("%s: expected %s, observed %s", e.Check, e.Expected, e.Observed)
}

func NewVerifyError(check, expected, observed string) *VerifyError {
	return &VerifyError{Check: check, Expected: expected, Observed: observed}
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ExitUsage
	}
	return ExitFailure
}
