package materialize

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
	}
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}

func TestCopyTreeMergesIntoExistingOutput(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{
		"/overlay/.eslintrc.cjs":     "module.exports = {}",
		"/overlay/.husky/pre-commit": "npx lint-staged",
		"/overlay/src/env.d.ts":      "// overlay",
		"/project/src/main.ts":       "// generated",
		"/project/src/env.d.ts":      "// generated",
		"/project/package.json":      "{}",
	})

	c := NewCopier(fsys, fsys)
	require.NoError(t, c.CopyTree("/overlay", "/project"))

	assert.Equal(t, "module.exports = {}", readFile(t, fsys, "/project/.eslintrc.cjs"))
	assert.Equal(t, "npx lint-staged", readFile(t, fsys, "/project/.husky/pre-commit"))
	assert.Equal(t, "// overlay", readFile(t, fsys, "/project/src/env.d.ts"), "overlay file wins")
	assert.Equal(t, "// generated", readFile(t, fsys, "/project/src/main.ts"), "unrelated files survive")
	assert.Equal(t, "{}", readFile(t, fsys, "/project/package.json"))
}

func TestCopyEntrySingleFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{
		"/src/a.txt":  "new",
		"/dest/a.txt": "old",
	})

	require.NoError(t, NewCopier(fsys, fsys).CopyEntry("/src/a.txt", "/dest/a.txt"))
	assert.Equal(t, "new", readFile(t, fsys, "/dest/a.txt"))
}

func TestCopyEntryMissingSource(t *testing.T) {
	fsys := afero.NewMemMapFs()
	err := NewCopier(fsys, fsys).CopyEntry("/nope", "/dest")
	assert.Error(t, err)
}

func TestCopyTreeFromEmbeddedStyleFS(t *testing.T) {
	src := afero.FromIOFS{FS: fstest.MapFS{
		"common/.prettierrc.json":      {Data: []byte(`{"semi": false}`), Mode: 0444},
		"common/.vscode/settings.json": {Data: []byte(`{}`), Mode: 0444},
	}}
	dir := t.TempDir()
	dst := afero.NewOsFs()

	require.NoError(t, NewCopier(src, dst).CopyTree("common", dir))

	data, err := os.ReadFile(filepath.Join(dir, ".prettierrc.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"semi": false}`, string(data))

	info, err := os.Stat(filepath.Join(dir, ".vscode", "settings.json"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0200, "copied files must be writable by the owner")
}

func TestClearDir(t *testing.T) {
	t.Run("empties nested content", func(t *testing.T) {
		dir := t.TempDir()
		fsys := afero.NewOsFs()
		writeFiles(t, fsys, map[string]string{
			filepath.Join(dir, "a.txt"):               "a",
			filepath.Join(dir, "nested", "b.txt"):     "b",
			filepath.Join(dir, "nested", "deep", "c"): "c",
			filepath.Join(dir, ".git", "HEAD"):        "ref",
		})

		require.NoError(t, ClearDir(fsys, dir))

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		empty, err := IsEmptyDir(fsys, dir)
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("missing directory is a no-op", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, ClearDir(fsys, "/does/not/exist"))
		exists, err := Exists(fsys, "/does/not/exist")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestIsEmptyDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/empty", 0755))
	writeFiles(t, fsys, map[string]string{"/full/x": "x"})

	empty, err := IsEmptyDir(fsys, "/empty")
	require.NoError(t, err)
	assert.True(t, empty)

	empty, err = IsEmptyDir(fsys, "/full")
	require.NoError(t, err)
	assert.False(t, empty)
}
