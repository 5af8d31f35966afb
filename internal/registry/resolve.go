package registry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/internal/skill"
	"github.com/thoreinstein/autoskills/pkg/frontmatter"
)

// directCandidates are tried in order, relative to the repository root.
var directCandidates = []string{"", "skills", "src", "packages", "plugins", "agents"}

// pluginLayouts are doublestar patterns (before the skill name) for skills
// shipped inside plugin bundles.
var pluginLayouts = []string{"plugins/*/skills/", "plugins/*/agents/", "plugins/*/"}

// skipDirs are never descended into by the fallback scan.
var skipDirs = map[string]bool{".git": true, "node_modules": true}

// Resolve finds the directory of skill name inside a cloned repository.
//
// The root itself wins when its SKILL.md declares the name. Next come the
// conventional locations (<name>, skills/<name>, src/<name>, packages/<name>,
// plugins/<name>, agents/<name>) and plugin bundles (plugins/*/skills/<name>,
// plugins/*/agents/<name>, plugins/*/<name>); each must hold a SKILL.md.
// Last, a breadth-first scan accepts any directory whose SKILL.md declares
// the name or whose own name matches.
func Resolve(root, name string) (string, error) {
	if name == "" {
		return "", errors.Wrap(errors.ErrInvalidInput, "skill name is required")
	}
	if declaredName(root) == name {
		return root, nil
	}

	for _, dir := range directCandidates {
		candidate := filepath.Join(root, dir, name)
		if hasSkillFile(candidate) {
			return candidate, nil
		}
	}

	fsys := os.DirFS(root)
	for _, layout := range pluginLayouts {
		matches, err := doublestar.Glob(fsys, layout+escapeMeta(name))
		if err != nil {
			continue
		}
		for _, m := range matches {
			candidate := filepath.Join(root, filepath.FromSlash(m))
			if hasSkillFile(candidate) {
				return candidate, nil
			}
		}
	}

	if dir := scan(root, name); dir != "" {
		return dir, nil
	}
	return "", errors.Wrapf(errors.ErrNotFound, "skill %q", name)
}

func scan(root, name string) string {
	queue := []string{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(current)
		if err != nil {
			continue
		}
		if hasSkillFile(current) && (declaredName(current) == name || filepath.Base(current) == name) {
			return current
		}
		for _, e := range entries {
			if e.IsDir() && !skipDirs[e.Name()] {
				queue = append(queue, filepath.Join(current, e.Name()))
			}
		}
	}
	return ""
}

func hasSkillFile(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, skill.FileName))
	return err == nil && !info.IsDir()
}

// declaredName returns the name field of dir/SKILL.md, or "" when there is
// none.
func declaredName(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, skill.FileName))
	if err != nil {
		return ""
	}
	return frontmatter.NameField(string(data))
}

var metaReplacer = strings.NewReplacer(
	`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`,
)

func escapeMeta(s string) string {
	return metaReplacer.Replace(s)
}
