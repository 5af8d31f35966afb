package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, name conflict, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, subprocess, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates the requested skill or file is absent.
	ErrNotFound = crdb.New("not found")

	// ErrAlreadyExists indicates a create targeted an occupied skill slot.
	ErrAlreadyExists = crdb.New("already exists")

	// ErrInvalidInput indicates a malformed name, package identifier or argument.
	ErrInvalidInput = crdb.New("invalid input")

	// ErrExternalProcess indicates a search, clone or other subprocess failed.
	ErrExternalProcess = crdb.New("external process failed")

	// ErrUnsupportedBody indicates a skill body that does not follow the
	// "# Title" + instructions layout and cannot be edited structurally.
	ErrUnsupportedBody = crdb.New("unsupported skill body")
)

// New returns an error with the given message and a stack trace.
func New(msg string) error {
	return crdb.NewWithDepth(1, msg)
}

// Newf returns a formatted error with a stack trace.
func Newf(format string, args ...any) error {
	return crdb.NewWithDepthf(1, format, args...)
}

// Wrap annotates err with msg. It returns nil if err is nil.
func Wrap(err error, msg string) error {
	return crdb.WrapWithDepth(1, err, msg)
}

// Wrapf annotates err with a formatted message. It returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return crdb.WrapWithDepthf(1, err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return crdb.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return crdb.As(err, target)
}

// Mark returns err marked so that Is(result, kind) holds while keeping
// err's own message.
func Mark(err, kind error) error {
	return crdb.Mark(err, kind)
}

// WithDetail attaches captured diagnostic text (e.g. subprocess stderr) to err.
func WithDetail(err error, detail string) error {
	return crdb.WithDetail(err, detail)
}

// Details returns the diagnostic text attached via WithDetail.
func Details(err error) []string {
	return crdb.GetAllDetails(err)
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps err to a process exit code. An ExitError keeps its own code;
// the user-facing sentinels map to ExitUser and everything else to ExitSystem.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	switch {
	case Is(err, ErrNotFound),
		Is(err, ErrAlreadyExists),
		Is(err, ErrInvalidInput),
		Is(err, ErrUnsupportedBody):
		return ExitUser
	default:
		return ExitSystem
	}
}
