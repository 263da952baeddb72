package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

// ExecutableMode is applied to scripts that must be runnable, such as git
// hooks.
const ExecutableMode os.FileMode = 0755

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(fsys afero.Fs, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if err := fsys.Chmod(path, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}

// MakeExecutable marks every regular file directly inside dir as executable.
// A missing dir is not an error. It returns the files it changed.
func MakeExecutable(fsys afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var changed []string
	for _, e := range entries {
		if !e.Mode().IsRegular() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := Chmod(fsys, path, ExecutableMode); err != nil {
			return changed, err
		}
		changed = append(changed, path)
	}
	return changed, nil
}
