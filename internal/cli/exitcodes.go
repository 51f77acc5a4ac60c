package cli

import (
	"errors"
	"fmt"
)

// Exit codes for parsec.
const (
	// ExitSuccess indicates the input parsed.
	ExitSuccess = 0

	// ExitParseFailure indicates the input did not parse.
	ExitParseFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration or grammar file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrParseFailed is returned by the parse command after the failure has been
// reported, so callers only need to set the exit code.
var ErrParseFailed = errors.New("parse failed")

// ExitError attaches a process exit code to a command error.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%v (exit %d)", e.Err, e.Code)
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
// Errors without an attached code come from flag and argument parsing.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitInvalidUsage
}
