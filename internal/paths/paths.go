package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the per-user config and cache subdirectories.
const AppName = "autoskills"

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" when it cannot be determined.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home := Home()
	if home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
func ConfigHome() string {
	return xdg.ConfigHome
}

// CacheHome returns the XDG cache home directory.
// On Linux: ~/.cache
// On macOS: ~/Library/Caches
func CacheHome() string {
	return xdg.CacheHome
}

// ConfigDir returns <ConfigHome>/autoskills, where config.yaml is searched.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ScratchDir returns the directory holding temporary clones during install.
// Returns: <CacheHome>/autoskills/clones/
func ScratchDir() string {
	return filepath.Join(CacheHome(), AppName, "clones")
}

// DefaultSkillsDir returns ~/.autoskills/personal-skills.
func DefaultSkillsDir() string {
	return filepath.Join(Home(), ".autoskills", "personal-skills")
}

// DefaultAgentsSkillsDir returns ~/.agents/skills, the directory agents scan
// for skills.
func DefaultAgentsSkillsDir() string {
	return filepath.Join(Home(), ".agents", "skills")
}
