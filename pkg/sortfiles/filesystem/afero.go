package filesystem

import (
	"io"
	"io/fs"
	"os"
	"sort"

	"github.com/spf13/afero"
)

// AferoFileSystem implements FileSystem on top of an afero.Fs.
type AferoFileSystem struct {
	fs afero.Fs
}

// New wraps an afero filesystem.
func New(base afero.Fs) *AferoFileSystem {
	return &AferoFileSystem{fs: base}
}

// NewOSFileSystem returns a FileSystem backed by the operating system.
func NewOSFileSystem() *AferoFileSystem {
	return New(afero.NewOsFs())
}

// NewMemFileSystem returns an empty in-memory FileSystem.
func NewMemFileSystem() *AferoFileSystem {
	return New(afero.NewMemMapFs())
}

// Afero exposes the underlying afero filesystem.
func (a *AferoFileSystem) Afero() afero.Fs {
	return a.fs
}

// Open implements ReadFS
func (a *AferoFileSystem) Open(name string) (io.ReadCloser, error) {
	return a.fs.Open(name)
}

// Exists implements ReadFS. Dangling symlinks count as existing.
func (a *AferoFileSystem) Exists(name string) bool {
	_, err := a.lstat(name)
	return err == nil
}

// IsDir implements ReadFS
func (a *AferoFileSystem) IsDir(name string) bool {
	info, err := a.lstat(name)
	return err == nil && info.IsDir()
}

// IsFile implements ReadFS
func (a *AferoFileSystem) IsFile(name string) bool {
	info, err := a.lstat(name)
	return err == nil && info.Mode().IsRegular()
}

// ReadDir implements ReadFS
func (a *AferoFileSystem) ReadDir(name string) ([]fs.FileInfo, error) {
	dir, err := a.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = dir.Close()
	}()

	entries, err := dir.Readdir(-1)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// MkdirAll implements WriteFS
func (a *AferoFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

// CreateExclusive implements WriteFS
func (a *AferoFileSystem) CreateExclusive(name string) (io.WriteCloser, error) {
	return a.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

// Remove implements WriteFS
func (a *AferoFileSystem) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *AferoFileSystem) lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}
