// Package logging provides structured logging for autoskills using slog.
//
// Text output goes through [Handler], which colorizes when writing to a
// terminal and masks secret-looking values (tokens, credentials embedded in
// clone URLs). JSON output uses the standard library handler. A log file can
// be attached with [Config.File]; records are then fanned out by
// [MultiHandler].
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbose),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// The protocol server writes its messages on stdout, so every logger in this
// program writes to stderr or a file.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	repo := skill.NewRepository(skill.Options{Logger: logging.ForTest(t)})
package logging
