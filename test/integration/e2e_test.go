//go:build integration

package integration_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/frontkit/create-frontend/internal/catalog"
	"github.com/frontkit/create-frontend/internal/generator"
	"github.com/frontkit/create-frontend/internal/pkgjson"
	"github.com/frontkit/create-frontend/internal/scaffold"
)

// TestFullScaffoldFlow runs the complete flow with the built-in catalog and
// overlays: generate -> overlay -> merge -> verify tree and package.json.
func TestFullScaffoldFlow(t *testing.T) {
	env := setupTestEnv(t)
	s := env.scaffolder(t, nil, nil)

	res, err := s.Run(context.Background(), scaffold.Options{TargetDir: "web", Template: "vue-ts"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	root := filepath.Join(env.WorkDir, "web")
	if res.Target.Root != root {
		t.Errorf("Root = %s, want %s", res.Target.Root, root)
	}
	if want := []string{"common", "vue-ts"}; !reflect.DeepEqual(res.Overlays, want) {
		t.Errorf("Overlays = %v, want %v", res.Overlays, want)
	}

	// Generator output survives the overlays.
	assertFileExists(t, filepath.Join(root, "src", "main.js"))
	assertFileContains(t, filepath.Join(root, ".template"), "vue-ts")

	// Common overlay.
	for _, f := range []string{".editorconfig", ".prettierrc.json", ".lintstagedrc.json", "commitlint.config.cjs", ".husky/pre-commit", ".husky/commit-msg"} {
		assertFileExists(t, filepath.Join(root, f))
	}
	hook, err := os.Stat(filepath.Join(root, ".husky", "pre-commit"))
	if err != nil {
		t.Fatalf("stat hook: %v", err)
	}
	if hook.Mode().Perm()&0111 == 0 {
		t.Errorf("hook mode = %v, want executable", hook.Mode())
	}

	// Template overlay replaces the common eslint config.
	assertFileContains(t, filepath.Join(root, ".eslintrc.cjs"), "@vue/eslint-config-typescript")

	m, err := pkgjson.ReadFile(afero.NewOsFs(), filepath.Join(root, pkgjson.FileName))
	if err != nil {
		t.Fatalf("reading package.json: %v", err)
	}
	if m.Name() != "web" {
		t.Errorf("name = %q, want web", m.Name())
	}
	wantKeys := []string{"name", "private", "version", "type", "scripts", "dependencies", "devDependencies"}
	if !reflect.DeepEqual(m.Keys(), wantKeys) {
		t.Errorf("top-level keys = %v, want %v", m.Keys(), wantKeys)
	}

	frag, err := m.Fragment()
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	if want := []string{"dev", "build", "lint", "format", "prepare"}; !reflect.DeepEqual(frag.Scripts.Keys(), want) {
		t.Errorf("script order = %v, want %v", frag.Scripts.Keys(), want)
	}
	if lint, _ := frag.Scripts.Get("lint"); lint == "placeholder" || !strings.Contains(lint, ".vue") {
		t.Errorf("lint script = %q, want the vue override", lint)
	}
	for _, dep := range []string{"vite", "eslint", "husky", "eslint-plugin-vue"} {
		if _, ok := frag.DevDependencies.Get(dep); !ok {
			t.Errorf("missing devDependency %s", dep)
		}
	}

	data, err := os.ReadFile(filepath.Join(root, pkgjson.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if data[len(data)-1] != '\n' || !strings.Contains(string(data), "\n  \"name\": \"web\",\n") {
		t.Errorf("package.json is not two-space indented with trailing newline:\n%s", data)
	}
}

// TestScaffoldIntoCurrentDirectory clears a confirmed non-empty cwd and
// derives the package name from its base name.
func TestScaffoldIntoCurrentDirectory(t *testing.T) {
	env := setupTestEnv(t)
	cwd := filepath.Join(env.WorkDir, "cool-site")
	writeFile(t, filepath.Join(cwd, "stale.txt"), "old")

	s := env.scaffolder(t, nil, nil)
	s.Cwd = cwd
	res, err := s.Run(context.Background(), scaffold.Options{TargetDir: ".", Template: "svelte", Overwrite: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !res.Overwritten {
		t.Error("expected Overwritten")
	}
	assertFileNotExists(t, filepath.Join(cwd, "stale.txt"))
	assertFileContains(t, filepath.Join(cwd, ".prettierrc.json"), "prettier-plugin-svelte")
	assertFileContains(t, filepath.Join(cwd, pkgjson.FileName), `"prettier-plugin-svelte"`)
	if res.Target.PackageName != "cool-site" {
		t.Errorf("package name = %q, want cool-site", res.Target.PackageName)
	}
	assertFileContains(t, filepath.Join(cwd, pkgjson.FileName), `"name": "cool-site"`)
}

// TestInvalidDirectoryNameNeedsPackageName cancels when the directory name
// is not a valid package name and no answer is available.
func TestInvalidDirectoryNameNeedsPackageName(t *testing.T) {
	env := setupTestEnv(t)

	s := env.scaffolder(t, nil, nil)
	_, err := s.Run(context.Background(), scaffold.Options{TargetDir: "My Site", Template: "solid"})
	if !errors.Is(err, scaffold.ErrCancelled) {
		t.Fatalf("Run error = %v, want ErrCancelled", err)
	}
	assertFileNotExists(t, filepath.Join(env.WorkDir, "My Site"))
}

// TestNonEmptyTargetWithoutConfirmation cancels before the generator runs.
func TestNonEmptyTargetWithoutConfirmation(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, filepath.Join(env.WorkDir, "app", "keep.txt"), "mine")

	s := env.scaffolder(t, nil, nil)
	_, err := s.Run(context.Background(), scaffold.Options{TargetDir: "app", Template: "react"})
	if !errors.Is(err, scaffold.ErrCancelled) {
		t.Fatalf("Run error = %v, want ErrCancelled", err)
	}
	assertFileExists(t, filepath.Join(env.WorkDir, "app", "keep.txt"))
	assertFileNotExists(t, filepath.Join(env.WorkDir, "app", ".template"))
}

// TestCustomCatalogAndOverlayDir loads a catalog file and an overlay tree
// from disk the way the config keys catalog_file and overlay_dir do.
func TestCustomCatalogAndOverlayDir(t *testing.T) {
	env := setupTestEnv(t)
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "catalog.yaml")
	writeFile(t, catalogPath, `common:
  scripts:
    check: tsc --noEmit
  devDependencies:
    typescript: ~5.4.0
frameworks:
  - name: docs
    display: Docs
    color: green
    overlay:
      devDependencies:
        vitepress: 1.0.0-rc.45
`)
	overlayDir := filepath.Join(dir, "overlays")
	writeFile(t, filepath.Join(overlayDir, "common", "README.md"), "# shared\n")
	writeFile(t, filepath.Join(overlayDir, "docs", "docs", "index.md"), "# docs\n")

	cat, err := catalog.LoadFile(catalogPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	overlays := afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), overlayDir))

	s := env.scaffolder(t, cat, overlays)
	res, err := s.Run(context.Background(), scaffold.Options{TargetDir: "handbook", Template: "docs"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	root := res.Target.Root
	assertFileContains(t, filepath.Join(root, "README.md"), "shared")
	assertFileContains(t, filepath.Join(root, "docs", "index.md"), "docs")
	assertFileContains(t, filepath.Join(root, pkgjson.FileName), `"vitepress": "1.0.0-rc.45"`)
	assertFileContains(t, filepath.Join(root, pkgjson.FileName), `"check": "tsc --noEmit"`)
}

// TestGeneratorFailureIsFatal leaves the partial output in place.
func TestGeneratorFailureIsFatal(t *testing.T) {
	env := setupTestEnv(t)
	t.Setenv("FAKE_VITE_FAIL", "3")

	s := env.scaffolder(t, nil, nil)
	_, err := s.Run(context.Background(), scaffold.Options{TargetDir: "broken", Template: "lit"})

	var exitErr *generator.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run error = %v, want *generator.ExitError", err)
	}
	if exitErr.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", exitErr.ExitCode)
	}
	assertFileExists(t, filepath.Join(env.WorkDir, "broken", "package.json"))
	assertFileNotExists(t, filepath.Join(env.WorkDir, "broken", ".prettierrc.json"))
}
