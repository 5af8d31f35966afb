// Package skill manages the personal skill library: a directory holding one
// subdirectory per skill, each with a SKILL.md file.
//
// A [Repository] performs create, read, update, list and delete over that
// tree and keeps a discovery symlink for each skill in the directory agents
// scan (see [Repository.Link]). It also implements the template scaffold
// behind "autoskills init" and the import behind "autoskills add".
package skill

import (
	"strings"
	"time"

	"github.com/thoreinstein/autoskills/internal/errors"
)

// FileName is the skill document inside each skill directory.
const FileName = "SKILL.md"

// DefaultVersion is assigned to new skills and assumed when a file has none.
const DefaultVersion = "1.0.0"

// DateLayout is the format of the created and updated fields.
const DateLayout = time.DateOnly

// whenMarker joins a description and its trigger condition.
const whenMarker = " Use when: "

// Skill is a fully loaded skill.
type Skill struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Version     string   `json:"version" yaml:"version"`
	Tags        []string `json:"tags" yaml:"tags"`
	Created     string   `json:"created" yaml:"created"`
	Updated     string   `json:"updated" yaml:"updated"`
	// Content is the Markdown body after the frontmatter.
	Content string `json:"content" yaml:"content"`
	// Path is the SKILL.md file.
	Path string `json:"path" yaml:"path"`
}

// Summary is the listing view of a skill.
type Summary struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description" yaml:"description" toml:"description"`
	Path        string `json:"path" yaml:"path" toml:"path"`
}

// CreateParams describes a new skill.
type CreateParams struct {
	Name         string
	Description  string
	Title        string
	WhenToUse    string
	Instructions string
	Tags         []string
}

// validate requires the fields that make up a usable skill. WhenToUse and
// Tags are optional.
func (p CreateParams) validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"description", p.Description},
		{"title", p.Title},
		{"instructions", p.Instructions},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(errors.ErrInvalidInput, "skill %q: %s required", p.Name, strings.Join(missing, ", "))
	}
	return nil
}

// UpdateParams lists the fields to change. Nil pointers and a nil Tags slice
// leave the stored value alone, as does a blank Description; a non-nil empty
// Tags clears the tags.
type UpdateParams struct {
	Description  *string
	Title        *string
	WhenToUse    *string
	Instructions *string
	Tags         []string
}

// composeDescription appends the trigger condition when there is one.
func composeDescription(description, when string) string {
	description = singleLine(description)
	when = singleLine(when)
	if when == "" {
		return description
	}
	return description + whenMarker + when
}

// stripWhen removes a trailing " Use when: ..." clause.
func stripWhen(description string) string {
	if i := strings.LastIndex(description, whenMarker); i >= 0 {
		return description[:i]
	}
	return description
}

// singleLine folds a value onto one line so it survives the frontmatter
// grammar. Spacing within a line is kept.
func singleLine(s string) string {
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' })
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

// normalizeTags trims tags, splits any that contain commas and drops empty
// ones. The result is never nil.
func normalizeTags(tags []string) []string {
	out := []string{}
	for _, t := range tags {
		for _, part := range strings.Split(t, ",") {
			if part = singleLine(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
