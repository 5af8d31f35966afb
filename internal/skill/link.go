package skill

import (
	"context"
	"os"
	"path/filepath"
)

// LinkResult reports what Link did.
type LinkResult string

const (
	// LinkCreated means a new symlink now points at the skill.
	LinkCreated LinkResult = "created"
	// LinkExists means something already occupies the link path; it was left alone.
	LinkExists LinkResult = "exists"
	// LinkSkipped means the skill directory does not exist.
	LinkSkipped LinkResult = "skipped"
	// LinkFailed means the link could not be created. The reason is logged.
	LinkFailed LinkResult = "failed"
)

// Link makes the skill visible to agents by creating
// <agents-dir>/<name> -> <skills-dir>/<name>. It never fails the caller: any
// problem is logged at warn and reported as LinkFailed.
func (r *Repository) Link(ctx context.Context, name string) LinkResult {
	if r.agentsDir == "" {
		return LinkSkipped
	}
	target := r.skillDir(name)
	if _, err := os.Stat(target); err != nil {
		return LinkSkipped
	}

	linkPath := filepath.Join(r.agentsDir, name)
	if _, err := os.Lstat(linkPath); err == nil {
		return LinkExists
	}

	if err := os.MkdirAll(r.agentsDir, 0o755); err != nil {
		r.logger.WarnContext(ctx, "cannot create agents skills directory", "dir", r.agentsDir, "error", err)
		return LinkFailed
	}
	if err := os.Symlink(target, linkPath); err != nil {
		r.logger.WarnContext(ctx, "cannot create skill symlink", "link", linkPath, "target", target, "error", err)
		return LinkFailed
	}

	r.logger.DebugContext(ctx, "linked skill", "link", linkPath, "target", target)
	return LinkCreated
}

// unlink removes the discovery link for name when it points at this
// repository's copy of the skill. Links to elsewhere are not ours to remove.
func (r *Repository) unlink(ctx context.Context, name string) {
	if r.agentsDir == "" {
		return
	}
	linkPath := filepath.Join(r.agentsDir, name)
	info, err := os.Lstat(linkPath)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return
	}
	dest, err := os.Readlink(linkPath)
	if err != nil {
		return
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(r.agentsDir, dest)
	}
	if filepath.Clean(dest) != filepath.Clean(r.skillDir(name)) {
		return
	}
	if err := os.Remove(linkPath); err != nil {
		r.logger.WarnContext(ctx, "cannot remove skill symlink", "link", linkPath, "error", err)
	}
}
