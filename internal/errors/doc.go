// Package errors provides error handling conventions for autoskills.
//
// This package defines sentinel errors for the failure taxonomy shared by the
// CLI and the MCP server, thin wrappers over github.com/cockroachdb/errors
// for wrapping and marking, an ExitError type for CLI exit code handling, and
// exit code constants following standard Unix conventions.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // report, don't fail
//	}
//
// The taxonomy is:
//
//   - [ErrNotFound]: requested skill or file absent
//   - [ErrAlreadyExists]: create into an occupied slot
//   - [ErrInvalidInput]: malformed name or package identifier
//   - [ErrExternalProcess]: search, clone or add command missing or failed
//   - [ErrUnsupportedBody]: skill body does not fit the structured layout
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, conflicts, etc.)
//   - ExitSystem (2): System-related error (I/O, subprocess, permissions, etc.)
//
// [ExitCode] maps any error onto these codes.
package errors
