// Package testutil provides test helpers for aliasresolve tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// FixturePath returns the absolute path of a fixture under tests/fixtures.
// The fixtures directory is located by walking up from the working
// directory, so the helper works from any package.
func FixturePath(t *testing.T, parts ...string) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	for dir := wd; ; {
		root := filepath.Join(dir, "tests", "fixtures")
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			return filepath.Join(append([]string{root}, parts...)...)
		}
		next := filepath.Dir(dir)
		if next == dir {
			t.Fatalf("no tests/fixtures above %s", wd)
		}
		dir = next
	}
}

// WriteFile writes content to dir/name on disk and returns the full path.
// name uses forward slashes.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	WriteMemFile(t, afero.NewOsFs(), path, content)
	return path
}

// WriteMemFile writes content to path on fs, creating parent directories.
func WriteMemFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MemFs returns an in-memory filesystem holding files (path to content).
func MemFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		WriteMemFile(t, fs, path, content)
	}
	return fs
}

// CopyFixture copies the named fixture into a fresh temporary directory and
// returns that directory.
func CopyFixture(t *testing.T, name string) string {
	t.Helper()
	dst := t.TempDir()
	if err := copyTree(afero.NewOsFs(), FixturePath(t, name), dst); err != nil {
		t.Fatalf("copy fixture %s: %v", name, err)
	}
	return dst
}

func copyTree(fs afero.Fs, src, dst string) error {
	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fs.MkdirAll(target, 0o755)
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		return afero.WriteFile(fs, target, data, info.Mode().Perm())
	})
}
