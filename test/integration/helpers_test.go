//go:build integration

package integration_test

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/frontkit/create-frontend/internal/catalog"
	"github.com/frontkit/create-frontend/internal/generator"
	"github.com/frontkit/create-frontend/internal/prompt"
	"github.com/frontkit/create-frontend/internal/scaffold"
)

// generatorScript stands in for create-vite: it creates the project
// directory, a package.json and a marker recording the template id. A
// non-empty FAKE_VITE_FAIL makes it exit with that code after writing.
const generatorScript = `#!/bin/sh
set -e
mkdir -p "$1/src"
cat > "$1/package.json" <<JSON
{
  "name": "starter",
  "private": true,
  "version": "0.0.0",
  "type": "module",
  "scripts": {
    "dev": "vite",
    "build": "vite build",
    "lint": "placeholder"
  },
  "dependencies": {},
  "devDependencies": {
    "vite": "^5.2.0"
  }
}
JSON
echo "$2" > "$1/.template"
echo "console.log('hi')" > "$1/src/main.js"
if [ -n "$FAKE_VITE_FAIL" ]; then
  exit "$FAKE_VITE_FAIL"
fi
`

// testEnv holds paths to isolated test directories.
type testEnv struct {
	WorkDir   string // parent directory projects are created in
	Generator string // generator command template running generatorScript
}

// setupTestEnv creates isolated temp directories and the fake generator.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake generator needs a POSIX shell")
	}

	env := &testEnv{WorkDir: t.TempDir()}

	script := filepath.Join(t.TempDir(), "fake-vite.sh")
	writeFile(t, script, generatorScript)
	if err := os.Chmod(script, 0755); err != nil {
		t.Fatalf("chmod %s: %v", script, err)
	}
	env.Generator = shellquote.Join(script) + " {{quote .Name}} {{quote .Template}}"
	return env
}

// scaffolder wires the production collaborators with no interactive input:
// any question cancels the run.
func (e *testEnv) scaffolder(t *testing.T, cat *catalog.Catalog, overlays afero.Fs) *scaffold.Scaffolder {
	t.Helper()
	if cat == nil {
		var err error
		if cat, err = catalog.Default(); err != nil {
			t.Fatalf("loading default catalog: %v", err)
		}
	}
	if overlays == nil {
		overlays = scaffold.DefaultOverlays()
	}
	return &scaffold.Scaffolder{
		Catalog:  cat,
		Prompter: prompt.NewTerminal(strings.NewReader(""), io.Discard),
		Generator: &generator.Exec{
			Command: e.Generator,
			Stdout:  io.Discard,
			Stderr:  io.Discard,
			Log:     zerolog.Nop(),
		},
		FS:       afero.NewOsFs(),
		Overlays: overlays,
		Cwd:      e.WorkDir,
		Log:      zerolog.Nop(),
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q\ncontent:\n%s", path, substr, string(data))
	}
}
