package skill

import (
	"context"
	"os"
	"path/filepath"

	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/pkg/fileutil"
	"github.com/thoreinstein/autoskills/pkg/frontmatter"
)

// AddResult describes the outcome of Add.
type AddResult struct {
	Name string
	// Path is the skill directory inside the library.
	Path string
	// Copied is false when the source already was the library copy.
	Copied bool
	// Link is LinkSkipped unless the skill was new to the library.
	Link LinkResult
}

// Add copies the skill at srcDir into the library. The name comes from the
// SKILL.md name field, falling back to the directory name. An existing skill
// of that name is replaced only when overwrite is set.
func (r *Repository) Add(ctx context.Context, srcDir string, overwrite bool) (*AddResult, error) {
	src, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", srcDir)
	}
	content, err := fileutil.ReadText(filepath.Join(src, FileName))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.Wrapf(errors.ErrNotFound, "%s not found in %s", FileName, src)
		}
		return nil, errors.Wrapf(err, "reading %s", FileName)
	}

	name := frontmatter.NameField(content)
	if name == "" {
		name = filepath.Base(src)
	}
	if err := checkLookupName(name); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating skills directory %s", r.dir)
	}
	target := r.skillDir(name)
	_, statErr := os.Lstat(target)
	isNew := os.IsNotExist(statErr)

	res := &AddResult{Name: name, Path: target, Link: LinkSkipped}
	if !fileutil.SameDir(src, target) {
		if !isNew && !overwrite {
			return nil, errors.Wrapf(errors.ErrAlreadyExists, "skill %q at %s", name, target)
		}
		if err := fileutil.ReplaceDir(src, target, r.copyOptions(ctx, src)); err != nil {
			return nil, errors.Wrapf(err, "copying skill %q", name)
		}
		res.Copied = true
	}
	if isNew {
		res.Link = r.Link(ctx, name)
	}

	r.logger.InfoContext(ctx, "added skill", "name", name, "path", target, "copied", res.Copied)
	return res, nil
}
