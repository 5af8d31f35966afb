package config

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/autoskills/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrEmptyCommand indicates search.command has no program.
	ErrEmptyCommand = errors.New("search command is empty")

	// ErrNegative indicates a count or duration below zero.
	ErrNegative = errors.New("must not be negative")

	// ErrInvalidURL indicates install.clone_base_url is not an absolute URL.
	ErrInvalidURL = errors.New("invalid clone base URL")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if err := validatePath(cfg.SkillsDir); err != nil {
		errs = append(errs, &FieldError{Field: "skills_dir", Value: cfg.SkillsDir, Err: err})
	}
	if err := validatePath(cfg.AgentsSkillsDir); err != nil {
		errs = append(errs, &FieldError{Field: "agents_skills_dir", Value: cfg.AgentsSkillsDir, Err: err})
	}

	if len(cfg.Search.Command) == 0 || strings.TrimSpace(cfg.Search.Command[0]) == "" {
		errs = append(errs, &FieldError{Field: "search.command", Err: ErrEmptyCommand})
	}
	if cfg.Search.MaxResults < 0 {
		errs = append(errs, &FieldError{Field: "search.max_results", Err: ErrNegative})
	}
	if cfg.Search.Timeout < 0 {
		errs = append(errs, &FieldError{Field: "search.timeout", Value: cfg.Search.Timeout.String(), Err: ErrNegative})
	}
	if cfg.Install.Depth < 0 {
		errs = append(errs, &FieldError{Field: "install.depth", Err: ErrNegative})
	}
	if cfg.Install.Timeout < 0 {
		errs = append(errs, &FieldError{Field: "install.timeout", Value: cfg.Install.Timeout.String(), Err: ErrNegative})
	}
	if u, err := url.Parse(cfg.Install.CloneBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, &FieldError{Field: "install.clone_base_url", Value: cfg.Install.CloneBaseURL, Err: ErrInvalidURL})
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}

// FieldError reports a problem with a single configuration key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
