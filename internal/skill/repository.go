package skill

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/internal/logging"
	"github.com/thoreinstein/autoskills/pkg/fileutil"
	"github.com/thoreinstein/autoskills/pkg/frontmatter"
)

// Options configures a Repository.
type Options struct {
	// Dir is the skills root, e.g. ~/.autoskills/personal-skills.
	Dir string
	// AgentsDir receives discovery symlinks. Empty disables linking.
	AgentsDir string
	Logger    *slog.Logger
	// Now is the clock used for created/updated dates. Defaults to time.Now.
	Now func() time.Time
}

// Repository is the skill library rooted at a directory.
type Repository struct {
	dir       string
	agentsDir string
	logger    *slog.Logger
	now       func() time.Time
}

// NewRepository returns a Repository for opts.Dir.
func NewRepository(opts Options) *Repository {
	r := &Repository{
		dir:       opts.Dir,
		agentsDir: opts.AgentsDir,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if r.logger == nil {
		r.logger = logging.NewDiscard()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Dir returns the skills root.
func (r *Repository) Dir() string { return r.dir }

// AgentsDir returns the discovery link directory.
func (r *Repository) AgentsDir() string { return r.agentsDir }

func (r *Repository) skillDir(name string) string {
	return filepath.Join(r.dir, name)
}

func (r *Repository) today() string {
	return r.now().UTC().Format(DateLayout)
}

// List returns every skill directly under the root, sorted by name. The
// root is created if missing. Files that cannot be read are logged and
// skipped.
func (r *Repository) List(ctx context.Context) ([]Summary, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating skills directory %s", r.dir)
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading skills directory %s", r.dir)
	}

	skills := []Summary{}
	for _, entry := range entries {
		// hidden entries include staging dirs of interrupted imports
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(r.dir, entry.Name(), FileName)
		content, err := fileutil.ReadText(path)
		if err != nil {
			if !errors.Is(err, errors.ErrNotFound) {
				r.logger.WarnContext(ctx, "skipping unreadable skill", "path", path, "error", err)
			}
			continue
		}
		meta, _ := frontmatter.Parse(content)
		name := meta.String("name")
		if name == "" {
			name = entry.Name()
		}
		skills = append(skills, Summary{
			Name:        name,
			Description: meta.String("description"),
			Path:        path,
		})
	}

	slices.SortFunc(skills, func(a, b Summary) int { return strings.Compare(a.Name, b.Name) })
	return skills, nil
}

// Get loads a skill. Missing fields take their defaults: name falls back to
// the directory name and version to DefaultVersion.
func (r *Repository) Get(_ context.Context, name string) (*Skill, error) {
	if err := checkLookupName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(r.skillDir(name), FileName)
	content, err := fileutil.ReadText(path)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.Wrapf(errors.ErrNotFound, "skill %q", name)
		}
		return nil, errors.Wrapf(err, "reading skill %q", name)
	}

	meta, body := frontmatter.Parse(content)
	s := &Skill{
		Name:        meta.String("name"),
		Description: meta.String("description"),
		Version:     meta.String("version"),
		Tags:        meta.Strings("tags"),
		Created:     meta.String("created"),
		Updated:     meta.String("updated"),
		Content:     body,
		Path:        path,
	}
	if s.Name == "" {
		s.Name = name
	}
	if s.Version == "" {
		s.Version = DefaultVersion
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	return s, nil
}

// Exists reports whether a skill directory called name exists.
func (r *Repository) Exists(name string) bool {
	if checkLookupName(name) != nil {
		return false
	}
	_, err := os.Stat(r.skillDir(name))
	return err == nil
}

// Create writes a new skill and links it. It fails with
// errors.ErrAlreadyExists, touching nothing, when the directory exists.
func (r *Repository) Create(ctx context.Context, p CreateParams) (string, error) {
	if err := ValidateName(p.Name); err != nil {
		return "", err
	}
	if err := p.validate(); err != nil {
		return "", err
	}
	dir := r.skillDir(p.Name)
	if _, err := os.Lstat(dir); err == nil {
		return "", errors.Wrapf(errors.ErrAlreadyExists, "skill %q", p.Name)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating skills directory %s", r.dir)
	}
	if err := os.Mkdir(dir, 0o755); err != nil {
		if os.IsExist(err) {
			return "", errors.Wrapf(errors.ErrAlreadyExists, "skill %q", p.Name)
		}
		return "", errors.Wrapf(err, "creating skill directory %s", dir)
	}

	today := r.today()
	meta := &frontmatter.Meta{}
	meta.Set("name", frontmatter.Text(p.Name))
	meta.Set("description", frontmatter.Text(composeDescription(p.Description, p.WhenToUse)))
	meta.Set("version", frontmatter.Text(DefaultVersion))
	meta.Set("tags", frontmatter.List(normalizeTags(p.Tags)...))
	meta.Set("created", frontmatter.Text(today))
	meta.Set("updated", frontmatter.Text(today))

	body := Body{
		Title:        singleLine(p.Title),
		Instructions: strings.TrimSpace(p.Instructions),
	}

	path := filepath.Join(dir, FileName)
	if err := fileutil.AtomicWriteString(path, frontmatter.Format(meta, "\n"+body.String())); err != nil {
		_ = os.RemoveAll(dir)
		return "", errors.Wrapf(err, "writing skill %q", p.Name)
	}

	r.logger.InfoContext(ctx, "created skill", "name", p.Name, "path", path)
	r.Link(ctx, p.Name)
	return path, nil
}

// Update merges p into an existing skill, bumps the patch version and sets
// the updated date. When a title or instructions are given the existing body
// must be structured (see ParseBody); otherwise nothing is written and the
// error matches errors.ErrUnsupportedBody.
func (r *Repository) Update(ctx context.Context, name string, p UpdateParams) (string, error) {
	if err := checkLookupName(name); err != nil {
		return "", err
	}
	path := filepath.Join(r.skillDir(name), FileName)
	content, err := fileutil.ReadText(path)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return "", errors.Wrapf(errors.ErrNotFound, "skill %q", name)
		}
		return "", errors.Wrapf(err, "reading skill %q", name)
	}

	meta, body := frontmatter.Parse(content)
	today := r.today()

	if meta.String("name") == "" {
		meta.Set("name", frontmatter.Text(name))
	}

	description := meta.String("description")
	if p.Description != nil && strings.TrimSpace(*p.Description) != "" {
		description = singleLine(*p.Description)
	}
	if p.WhenToUse != nil && strings.TrimSpace(*p.WhenToUse) != "" {
		description = composeDescription(stripWhen(description), *p.WhenToUse)
	}
	meta.Set("description", frontmatter.Text(description))

	version := meta.String("version")
	if version == "" {
		version = DefaultVersion
	}
	meta.Set("version", frontmatter.Text(BumpPatch(version)))

	if p.Tags != nil {
		meta.Set("tags", frontmatter.List(normalizeTags(p.Tags)...))
	} else if _, ok := meta.Get("tags"); !ok {
		meta.Set("tags", frontmatter.List())
	}
	if meta.String("created") == "" {
		meta.Set("created", frontmatter.Text(today))
	}
	meta.Set("updated", frontmatter.Text(today))

	if p.Title != nil || p.Instructions != nil {
		current, err := ParseBody(body)
		if err != nil {
			return "", errors.Wrapf(err, "updating skill %q", name)
		}
		if p.Title != nil && strings.TrimSpace(*p.Title) != "" {
			current.Title = singleLine(*p.Title)
		}
		if p.Instructions != nil && strings.TrimSpace(*p.Instructions) != "" {
			current.Instructions = strings.TrimSpace(*p.Instructions)
		}
		body = "\n" + current.String()
	}

	if err := fileutil.AtomicWriteString(path, frontmatter.Format(meta, body)); err != nil {
		return "", errors.Wrapf(err, "writing skill %q", name)
	}
	r.logger.InfoContext(ctx, "updated skill", "name", name, "version", meta.String("version"))
	return path, nil
}

// Delete removes the skill directory and its discovery link. It reports
// false when there was nothing to delete.
func (r *Repository) Delete(ctx context.Context, name string) (bool, error) {
	if err := checkLookupName(name); err != nil {
		return false, err
	}
	dir := r.skillDir(name)
	if _, err := os.Lstat(dir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "checking skill %q", name)
	}

	r.unlink(ctx, name)
	if err := os.RemoveAll(dir); err != nil {
		return false, errors.Wrapf(err, "removing skill %q", name)
	}
	r.logger.InfoContext(ctx, "deleted skill", "name", name)
	return true, nil
}

// Import replaces the skill slot name with a copy of srcDir and links it.
// It is used for skills fetched from public repositories; symlinks in srcDir
// are copied when they resolve inside rootDir (the whole checkout) and
// skipped otherwise. On failure the previous skill, if any, is untouched.
func (r *Repository) Import(ctx context.Context, srcDir, rootDir, name string) (string, LinkResult, error) {
	if err := checkLookupName(name); err != nil {
		return "", LinkSkipped, err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", LinkSkipped, errors.Wrapf(err, "creating skills directory %s", r.dir)
	}
	target := r.skillDir(name)
	if err := fileutil.ReplaceDir(srcDir, target, r.copyOptions(ctx, rootDir)); err != nil {
		return "", LinkSkipped, errors.Wrapf(err, "copying skill %q", name)
	}
	r.logger.InfoContext(ctx, "imported skill", "name", name, "path", target)
	return target, r.Link(ctx, name), nil
}

func (r *Repository) copyOptions(ctx context.Context, root string) fileutil.CopyOptions {
	return fileutil.CopyOptions{
		Root: root,
		Skipped: func(path string, reason error) {
			r.logger.WarnContext(ctx, "skipping symlink", "path", path, "reason", reason)
		},
	}
}
