package skill

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/pkg/fileutil"
)

// ResourceDirs are the optional resource directories created by Init.
var ResourceDirs = []string{"scripts", "references", "assets"}

const template = `---
name: {skill_name}
description: [TODO: Complete and informative explanation of what the skill does and when to use it. Include WHEN to use this skill - specific scenarios, file types, or tasks that trigger it.]
---

# {skill_title}

## Overview

[TODO: 1-2 sentences explaining what this skill enables]

## When to Use

[TODO: Describe the specific scenarios, file types, or tasks that should trigger this skill]

## Instructions

[TODO: Step-by-step instructions for the agent to follow]

## Resources (Optional)

This skill can include optional resource directories:

- **scripts/**: Executable code (Python/Bash/etc.) for automation
- **references/**: Documentation to be loaded into context as needed
- **assets/**: Files used in output (templates, images, fonts, etc.)

Delete this section and any unneeded directories when done.
`

// Template returns the scaffold SKILL.md for name.
func Template(name string) string {
	return strings.NewReplacer(
		"{skill_name}", name,
		"{skill_title}", TitleCase(name),
	).Replace(template)
}

// TitleCase turns "pdf-tools" into "Pdf Tools".
func TitleCase(name string) string {
	words := strings.Split(name, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Init scaffolds <dir>/<name> with the template SKILL.md and empty resource
// directories. An empty dir means the skills root. It returns the skill
// directory.
func (r *Repository) Init(ctx context.Context, name, dir string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if dir == "" {
		dir = r.dir
	}
	skillDir := filepath.Join(dir, name)
	if _, err := os.Lstat(skillDir); err == nil {
		return "", errors.Wrapf(errors.ErrAlreadyExists, "skill directory %s", skillDir)
	}

	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating skill directory %s", skillDir)
	}
	if err := fileutil.AtomicWriteString(filepath.Join(skillDir, FileName), Template(name)); err != nil {
		_ = os.RemoveAll(skillDir)
		return "", errors.Wrapf(err, "writing %s", FileName)
	}
	for _, sub := range ResourceDirs {
		if err := os.MkdirAll(filepath.Join(skillDir, sub), 0o755); err != nil {
			return "", errors.Wrapf(err, "creating %s/", sub)
		}
	}

	r.logger.InfoContext(ctx, "initialized skill", "name", name, "path", skillDir)
	return skillDir, nil
}
