// Package paths resolves the directories autoskills reads and writes.
//
// The package wraps github.com/adrg/xdg for the XDG Base Directory locations
// (config and cache homes) and adds the two fixed library locations:
//
//	paths.DefaultSkillsDir()       // ~/.autoskills/personal-skills
//	paths.DefaultAgentsSkillsDir() // ~/.agents/skills
//
// Configuration may override both; see the config package.
package paths
