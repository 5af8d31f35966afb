package registry

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/thoreinstein/autoskills/internal/config"
	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/internal/git"
	"github.com/thoreinstein/autoskills/internal/logging"
	"github.com/thoreinstein/autoskills/internal/paths"
	"github.com/thoreinstein/autoskills/internal/skill"
)

// Importer stores a resolved skill directory in the local library.
// *skill.Repository implements it.
type Importer interface {
	Import(ctx context.Context, srcDir, rootDir, name string) (string, skill.LinkResult, error)
}

// Installation describes an installed public skill.
type Installation struct {
	Package Package          `json:"package"`
	Path    string           `json:"path"`
	Link    skill.LinkResult `json:"link"`
}

// InstallerOptions configures an Installer. Zero values take defaults.
type InstallerOptions struct {
	Cloner  git.Cloner
	Config  config.InstallConfig
	Scratch string
	Logger  *slog.Logger
}

// Installer fetches public skills into the library.
type Installer struct {
	repo    Importer
	cloner  git.Cloner
	cfg     config.InstallConfig
	scratch string
	logger  *slog.Logger
}

// NewInstaller returns an Installer that imports into repo.
func NewInstaller(repo Importer, opts InstallerOptions) *Installer {
	i := &Installer{
		repo:    repo,
		cloner:  opts.Cloner,
		cfg:     opts.Config,
		scratch: opts.Scratch,
		logger:  opts.Logger,
	}
	if i.logger == nil {
		i.logger = logging.NewDiscard()
	}
	if i.cloner == nil {
		i.cloner = git.New(i.logger)
	}
	if i.scratch == "" {
		i.scratch = paths.ScratchDir()
	}
	if i.cfg.CloneBaseURL == "" {
		i.cfg.CloneBaseURL = config.DefaultCloneBaseURL
	}
	return i
}

// Install clones the repository named by pkg ("owner/repo@skill"), copies
// the skill into the library and links it. The scratch clone is always
// removed.
func (i *Installer) Install(ctx context.Context, pkg string) (*Installation, error) {
	p, err := ParsePackage(pkg)
	if err != nil {
		return nil, err
	}

	if i.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.cfg.Timeout)
		defer cancel()
	}

	if err := paths.EnsureDir(i.scratch, paths.DefaultDirPerm); err != nil {
		return nil, errors.Wrap(err, "creating scratch directory")
	}
	tmp := filepath.Join(i.scratch, uuid.NewString())
	defer func() {
		if err := os.RemoveAll(tmp); err != nil {
			i.logger.WarnContext(ctx, "failed to clean up scratch clone", "dir", tmp, "error", err)
		}
	}()

	url := p.CloneURL(i.cfg.CloneBaseURL)
	i.logger.InfoContext(ctx, "cloning skill repository", "package", p.String(), "url", logging.MaskURL(url))
	if err := i.cloner.Clone(ctx, url, tmp, git.CloneOptions{Depth: i.cfg.Depth}); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to clone %s/%s", p.Owner, p.Repo), errors.ErrExternalProcess)
	}

	src, err := Resolve(tmp, p.Skill)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving in %s/%s", p.Owner, p.Repo)
	}
	i.logger.DebugContext(ctx, "resolved skill", "package", p.String(), "dir", src)

	path, link, err := i.repo.Import(ctx, src, tmp, p.Skill)
	if err != nil {
		return nil, errors.Wrapf(err, "installing %s", p)
	}
	return &Installation{Package: p, Path: path, Link: link}, nil
}
