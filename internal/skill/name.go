package skill

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/thoreinstein/autoskills/internal/errors"
)

// MaxNameLength is the maximum allowed length for skill names.
const MaxNameLength = 64

// nameRegex: lowercase alphanumeric segments joined by single hyphens.
var nameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// NameError explains why a skill name was rejected.
type NameError struct {
	Name    string
	Message string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("invalid skill name %q: %s", e.Name, e.Message)
}

// Unwrap lets NameError match errors.ErrInvalidInput.
func (e *NameError) Unwrap() error {
	return errors.ErrInvalidInput
}

// ValidateName checks a name for a newly created skill.
func ValidateName(name string) error {
	if name == "" {
		return &NameError{Name: name, Message: "name is required"}
	}
	if len(name) > MaxNameLength {
		return &NameError{Name: name, Message: fmt.Sprintf("name exceeds maximum length of %d characters", MaxNameLength)}
	}
	if nameRegex.MatchString(name) {
		return nil
	}

	msg := "name must be lowercase alphanumeric with single hyphens between segments"
	switch {
	case strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-"):
		msg = "name cannot start or end with a hyphen"
	case strings.Contains(name, "--"):
		msg = "name cannot contain consecutive hyphens"
	case strings.ToLower(name) != name:
		msg = "name must be lowercase"
	}
	return &NameError{Name: name, Message: msg}
}

// checkLookupName accepts any name that stays inside the skills directory.
// Installed and imported skills are not held to ValidateName, so lookups
// only guard against path traversal.
func checkLookupName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &NameError{Name: name, Message: "name is required"}
	case name == "." || name == "..":
		return &NameError{Name: name, Message: "name cannot be a relative directory"}
	case strings.ContainsAny(name, `/\`) || filepath.Base(name) != name:
		return &NameError{Name: name, Message: "name cannot contain path separators"}
	case strings.ContainsRune(name, 0):
		return &NameError{Name: name, Message: "name cannot contain NUL"}
	}
	return nil
}
