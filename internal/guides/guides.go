// Package guides holds the built-in authoring guides returned alongside
// review and quick-command responses. They ship inside the binary as
// SKILL.md documents.
package guides

import (
	"embed"
	"path"
	"sync"

	"github.com/thoreinstein/autoskills/pkg/frontmatter"
)

// Guide names.
const (
	SkillCreator     = "skill-creator"
	SkillUpdater     = "skill-updater"
	AutoskillHandler = "autoskill-handler"
)

//go:embed builtin/*/SKILL.md
var builtin embed.FS

// Guide is a built-in guide in the shape tools return it.
type Guide struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
}

var (
	loadOnce sync.Once
	loaded   map[string]*Guide
)

func load() {
	loaded = make(map[string]*Guide)
	entries, err := builtin.ReadDir("builtin")
	if err != nil {
		return
	}
	for _, e := range entries {
		data, err := builtin.ReadFile(path.Join("builtin", e.Name(), "SKILL.md"))
		if err != nil {
			continue
		}
		meta, body := frontmatter.Parse(string(data))
		name := meta.String("name")
		if name == "" {
			name = e.Name()
		}
		loaded[name] = &Guide{
			Name:         name,
			Description:  meta.String("description"),
			Instructions: body,
		}
	}
}

// Get returns the named guide, or nil if there is no such guide.
func Get(name string) *Guide {
	loadOnce.Do(load)
	return loaded[name]
}

// Creator returns the skill creator guide.
func Creator() *Guide { return Get(SkillCreator) }

// Updater returns the skill updater guide.
func Updater() *Guide { return Get(SkillUpdater) }

// Handler returns the /autoskill handler guide.
func Handler() *Guide { return Get(AutoskillHandler) }
