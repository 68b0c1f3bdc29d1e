package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles/filesystem"
)

// NewMemTree creates an in-memory filesystem holding files, keyed by
// absolute slash-separated path.
func NewMemTree(t *testing.T, files map[string]string) *filesystem.AferoFileSystem {
	t.Helper()
	fsys := filesystem.NewMemFileSystem()
	WriteTree(t, fsys.Afero(), files)
	return fsys
}

// WriteTree writes files (path -> content) into base, creating parents.
func WriteTree(t *testing.T, base afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		path = filepath.FromSlash(path)
		if err := base.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create parent of %s: %v", path, err)
		}
		if err := afero.WriteFile(base, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}

// WriteOSTree writes files (relative slash path -> content) under root on disk.
func WriteOSTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	rel := make(map[string]string, len(files))
	for path, content := range files {
		rel[filepath.Join(root, filepath.FromSlash(path))] = content
	}
	WriteTree(t, afero.NewOsFs(), rel)
}

// ReadTree returns every regular file under root as relative slash path -> content.
func ReadTree(t *testing.T, base afero.Fs, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := afero.Walk(base, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		data, err := afero.ReadFile(base, path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to read tree %s: %v", root, err)
	}
	return out
}

// ReadOSTree is ReadTree on the OS filesystem.
func ReadOSTree(t *testing.T, root string) map[string]string {
	t.Helper()
	return ReadTree(t, afero.NewOsFs(), root)
}

// SkipIfRoot skips tests that rely on permission bits being enforced.
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks are not enforced for root")
	}
}
