// Package git runs the git command line for cloning skill repositories.
//
// Clones run non-interactively: stdin is closed, credential prompts are
// disabled, and all output is captured rather than streamed, since the
// protocol server owns this process's stdin and stdout.
package git

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/internal/logging"
)

// Cloner clones a repository into a local directory. The installer depends
// on this interface so tests can substitute a fake.
type Cloner interface {
	Clone(ctx context.Context, url, dest string, opts CloneOptions) error
}

// CloneOptions tunes a clone.
type CloneOptions struct {
	// Depth limits history; zero clones everything.
	Depth int
}

// CLI is a Cloner backed by the git executable.
type CLI struct {
	// Binary is the git executable; "git" when empty.
	Binary string
	Logger *slog.Logger
}

// New returns a CLI using "git" from PATH.
func New(logger *slog.Logger) *CLI {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &CLI{Binary: "git", Logger: logger}
}

var (
	allowedSchemes = []string{"https://", "http://", "ssh://", "git://", "file://"}
	scpLike        = regexp.MustCompile(`^[\w.-]+@[\w.-]+:[\w./~-]+\.git$`)
)

// ValidateURL rejects anything git could interpret as an option or a
// transport helper (ext::, fd::). Only the common schemes and scp-like
// user@host:path.git addresses are accepted.
func ValidateURL(url string) error {
	if url == "" {
		return errors.Wrap(errors.ErrInvalidInput, "empty repository URL")
	}
	if strings.HasPrefix(url, "-") || strings.Contains(url, "::") {
		return errors.Wrapf(errors.ErrInvalidInput, "unsafe repository URL %q", url)
	}
	for _, scheme := range allowedSchemes {
		if strings.HasPrefix(url, scheme) {
			return nil
		}
	}
	if scpLike.MatchString(url) {
		return nil
	}
	return errors.Wrapf(errors.ErrInvalidInput, "unsupported repository URL %q", url)
}

// Clone clones url into dest. Failures match errors.ErrExternalProcess and
// carry git's stderr as error detail.
func (c *CLI) Clone(ctx context.Context, url, dest string, opts CloneOptions) error {
	if err := ValidateURL(url); err != nil {
		return err
	}

	args := []string{"clone", "--quiet"}
	if opts.Depth > 0 {
		args = append(args, "--depth="+strconv.Itoa(opts.Depth))
	}
	args = append(args, "--", url, dest)

	if _, err := c.run(ctx, "", args...); err != nil {
		return errors.Wrapf(err, "cloning %s", logging.MaskURL(url))
	}
	return nil
}

func (c *CLI) run(ctx context.Context, dir string, args ...string) (string, error) {
	bin := c.Binary
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.Logger.Debug("running git", "args", strings.Join(args, " "))
	err := cmd.Run()
	c.Logger.Log(ctx, logging.LevelTrace, "git finished",
		"stdout", strings.TrimSpace(stdout.String()),
		"stderr", strings.TrimSpace(stderr.String()))

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", errors.Mark(errors.Wrap(err, "git is not installed"), errors.ErrExternalProcess)
		}
		wrapped := errors.Mark(errors.Wrap(err, "git "+args[0]), errors.ErrExternalProcess)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			wrapped = errors.WithDetail(wrapped, msg)
		}
		return "", wrapped
	}
	return stdout.String(), nil
}
