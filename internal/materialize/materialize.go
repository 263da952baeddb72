// Package materialize copies overlay trees onto a project root and empties
// directories before regeneration. All operations go through afero so the
// source can be an embedded tree and tests can run in memory.
package materialize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const dirPerm = 0755

// Copier copies entries from one filesystem to another. From and To may be
// the same filesystem.
type Copier struct {
	From afero.Fs
	To   afero.Fs
}

// NewCopier returns a Copier reading from src and writing to dst.
func NewCopier(src, dst afero.Fs) *Copier {
	return &Copier{From: src, To: dst}
}

// CopyEntry copies src to dest. Directories are copied recursively and may
// already exist at dest; files replace whatever is at dest.
func (c *Copier) CopyEntry(src, dest string) error {
	info, err := c.From.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if info.IsDir() {
		return c.copyDir(src, dest)
	}
	return c.copyFile(src, dest, info.Mode().Perm())
}

// CopyTree copies every direct child of srcDir into destDir.
func (c *Copier) CopyTree(srcDir, destDir string) error {
	entries, err := afero.ReadDir(c.From, srcDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcDir, err)
	}
	if err := c.To.MkdirAll(destDir, dirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", destDir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if err := c.CopyEntry(filepath.Join(srcDir, name), filepath.Join(destDir, name)); err != nil {
			return err
		}
	}
	return nil
}

// IsEmptyDir reports whether path, an existing directory, has no entries.
func IsEmptyDir(fsys afero.Fs, path string) (bool, error) {
	return afero.IsEmpty(fsys, path)
}

// Exists reports whether path exists.
func Exists(fsys afero.Fs, path string) (bool, error) {
	return afero.Exists(fsys, path)
}

// ClearDir removes every descendant of dir, leaving dir itself in place and
// empty. A missing dir is not an error.
func ClearDir(fsys afero.Fs, dir string) error {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		p := filepath.Join(dir, entry.Name())
		if err := fsys.RemoveAll(p); err != nil {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return nil
}

func (c *Copier) copyDir(src, dest string) error {
	if err := c.To.MkdirAll(dest, dirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	entries, err := afero.ReadDir(c.From, src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if err := c.CopyEntry(filepath.Join(src, name), filepath.Join(dest, name)); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies a single file, keeping its permission bits. Embedded
// sources report read-only modes, so the owner always gets write access.
func (c *Copier) copyFile(src, dest string, perm os.FileMode) error {
	data, err := afero.ReadFile(c.From, src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := afero.WriteFile(c.To, dest, data, perm|0200); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}
