package registry

import (
	"regexp"

	"github.com/thoreinstein/autoskills/internal/errors"
)

// Package identifies a public skill: the GitHub repository that holds it and
// the skill's name inside that repository.
type Package struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Skill string `json:"skill"`
}

var packagePattern = regexp.MustCompile(`^([\w.-]+)/([\w.-]+)@([\w.-]+)$`)

// ParsePackage parses "owner/repo@skill".
func ParsePackage(s string) (Package, error) {
	m := packagePattern.FindStringSubmatch(s)
	if m == nil {
		return Package{}, errors.Wrapf(errors.ErrInvalidInput, "invalid package format %q, expected owner/repo@skill-name", s)
	}
	return Package{Owner: m[1], Repo: m[2], Skill: m[3]}, nil
}

func (p Package) String() string {
	return p.Owner + "/" + p.Repo + "@" + p.Skill
}

// CloneURL returns the repository URL under base, e.g.
// https://github.com/owner/repo.git.
func (p Package) CloneURL(base string) string {
	return base + "/" + p.Owner + "/" + p.Repo + ".git"
}
