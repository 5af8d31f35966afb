package skill

import (
	"strconv"
	"strings"
)

// BumpPatch increments the patch component of a major.minor.patch version.
// Missing components are filled with zero and a non-numeric patch restarts
// at 1, so "2" becomes "2.0.1" and "" becomes "1.0.1".
func BumpPatch(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		version = DefaultVersion
	}
	parts := strings.SplitN(version, ".", 3)
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	for i := range 2 {
		if parts[i] == "" {
			parts[i] = "0"
		}
	}
	patch, err := strconv.Atoi(parts[2])
	if err != nil || patch < 0 {
		patch = 0
	}
	parts[2] = strconv.Itoa(patch + 1)
	return strings.Join(parts, ".")
}
