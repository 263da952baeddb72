package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
)

func TestChmod(t *testing.T) {
	fsys := afero.NewOsFs()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.txt")
	if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(fsys, path, 0600); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want %o", perm, 0600)
		}
	}
}

func TestChmodDir(t *testing.T) {
	fsys := afero.NewOsFs()
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "secure")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(fsys, dir, 0700); err != nil {
		t.Fatalf("Chmod on dir failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0700 {
			t.Errorf("permissions = %o, want %o", perm, 0700)
		}
	}
}

func TestChmodMissingFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod is a no-op on Windows")
	}
	if err := Chmod(afero.NewMemMapFs(), "/nope", 0600); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMakeExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod is a no-op on Windows")
	}
	fsys := afero.NewMemMapFs()
	hooks := filepath.Join("/proj", ".husky")
	for _, name := range []string{"pre-commit", "commit-msg"} {
		if err := afero.WriteFile(fsys, filepath.Join(hooks, name), []byte("npx lint-staged\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := fsys.MkdirAll(filepath.Join(hooks, "_"), 0755); err != nil {
		t.Fatal(err)
	}

	changed, err := MakeExecutable(fsys, hooks)
	if err != nil {
		t.Fatalf("MakeExecutable: %v", err)
	}
	if len(changed) != 2 {
		t.Errorf("changed %v, want the two hook files", changed)
	}
	for _, path := range changed {
		info, err := fsys.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != ExecutableMode {
			t.Errorf("%s permissions = %o, want %o", path, perm, ExecutableMode)
		}
	}
}

func TestMakeExecutableMissingDir(t *testing.T) {
	changed, err := MakeExecutable(afero.NewMemMapFs(), "/proj/.husky")
	if err != nil {
		t.Fatalf("MakeExecutable on missing dir: %v", err)
	}
	if len(changed) != 0 {
		t.Errorf("changed %v, want nothing", changed)
	}
}
