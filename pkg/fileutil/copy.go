package fileutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/thoreinstein/autoskills/internal/errors"
)

// ErrLinkOutsideRoot marks a symbolic link whose target lies outside the
// copy root. Such links are left out of the copy.
var ErrLinkOutsideRoot = errors.New("symlink target outside copy root")

// errLinkCycle marks a directory link that leads back into a directory
// already being copied.
var errLinkCycle = errors.New("symlink cycle")

// CopyOptions tunes CopyDir and ReplaceDir.
type CopyOptions struct {
	// Root bounds where symbolic links may point. Links are followed and
	// their targets copied when they resolve inside Root; anything else is
	// skipped. Defaults to the source directory.
	Root string

	// Skipped, when set, is called for every entry left out of the copy.
	Skipped func(path string, reason error)
}

type copier struct {
	root    string
	skipped func(string, error)
	// active holds the resolved directories on the current copy path.
	active map[string]bool
}

// CopyDir recursively copies the directory src into dst, creating dst if
// needed. Regular files keep their permission bits. Symbolic links are
// replaced by copies of their targets, subject to opts.Root.
func CopyDir(src, dst string, opts CopyOptions) error {
	src, err := filepath.Abs(src)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", src)
	}
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, "stating %s", src)
	}
	if !info.IsDir() {
		return errors.Newf("%s is not a directory", src)
	}

	root := opts.Root
	if root == "" {
		root = src
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", root)
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", root)
	}

	c := &copier{root: resolved, skipped: opts.Skipped, active: make(map[string]bool)}
	return c.copyDir(src, dst)
}

func (c *copier) copyDir(src, dst string) error {
	resolved, err := filepath.EvalSymlinks(src)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", src)
	}
	c.active[resolved] = true
	defer delete(c.active, resolved)

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %s", dst)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			if err := c.copyLink(srcPath, dstPath); err != nil {
				return err
			}
		case entry.IsDir():
			if err := c.copyDir(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := CopyFile(srcPath, dstPath); err != nil {
				return err
			}
		default:
			// sockets, devices, pipes
		}
	}
	return nil
}

// copyLink copies what the link at path points to. Links that dangle, leave
// the root or loop are reported through skip and do not fail the copy.
func (c *copier) copyLink(path, dst string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		c.skip(path, err)
		return nil
	}
	if !within(c.root, target) {
		c.skip(path, ErrLinkOutsideRoot)
		return nil
	}
	info, err := os.Stat(target)
	if err != nil {
		c.skip(path, err)
		return nil
	}

	switch {
	case info.IsDir():
		if c.active[target] {
			c.skip(path, errLinkCycle)
			return nil
		}
		return c.copyDir(target, dst)
	case info.Mode().IsRegular():
		return CopyFile(target, dst)
	default:
		return nil
	}
}

func (c *copier) skip(path string, reason error) {
	if c.skipped != nil {
		c.skipped(path, reason)
	}
}

// within reports whether path lies in or below root. Both are absolute and
// free of symlinks.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// CopyFile copies a single regular file from src to dst.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening source file %s", src)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrapf(err, "stating source file %s", src)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "creating destination file %s", dst)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return errors.Wrapf(err, "copying %s to %s", src, dst)
	}
	return dstFile.Close()
}

// ReplaceDir makes dst an exact copy of src. The copy is staged in a hidden
// sibling of dst and swapped in only once complete, so a failed copy leaves
// dst as it was. When src and dst resolve to the same directory nothing
// happens.
func ReplaceDir(src, dst string, opts CopyOptions) error {
	if SameDir(src, dst) {
		return nil
	}

	id := uuid.NewString()
	stage := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+"-"+id)
	if err := CopyDir(src, stage, opts); err != nil {
		_ = os.RemoveAll(stage)
		return err
	}

	var previous string
	if _, err := os.Lstat(dst); err == nil {
		previous = stage + ".old"
		if err := os.Rename(dst, previous); err != nil {
			_ = os.RemoveAll(stage)
			return errors.Wrapf(err, "moving aside %s", dst)
		}
	}
	if err := os.Rename(stage, dst); err != nil {
		if previous != "" {
			_ = os.Rename(previous, dst)
		}
		_ = os.RemoveAll(stage)
		return errors.Wrapf(err, "moving %s into place", dst)
	}
	if previous != "" {
		// best effort: skill listings ignore hidden directories
		_ = os.RemoveAll(previous)
	}
	return nil
}

// SameDir reports whether a and b name the same existing directory.
func SameDir(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
