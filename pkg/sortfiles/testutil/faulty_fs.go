package testutil

import (
	"io"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles/filesystem"
)

// FaultyFS wraps a FileSystem and injects failures for selected paths.
type FaultyFS struct {
	filesystem.FileSystem

	mu sync.Mutex
	// ReadDirErrs fails ReadDir for the given directories.
	ReadDirErrs map[string]error
	// CreateErrs fails CreateExclusive for the given paths.
	CreateErrs map[string]error
	// Corrupt appends garbage to every file written.
	Corrupt bool
	// HideOnce makes Exists report false once for each listed path.
	HideOnce map[string]bool
}

// NewFaultyFS wraps base with no faults configured.
func NewFaultyFS(base filesystem.FileSystem) *FaultyFS {
	return &FaultyFS{
		FileSystem:  base,
		ReadDirErrs: make(map[string]error),
		CreateErrs:  make(map[string]error),
		HideOnce:    make(map[string]bool),
	}
}

// ReadDir implements filesystem.ReadFS
func (f *FaultyFS) ReadDir(name string) ([]fs.FileInfo, error) {
	f.mu.Lock()
	err := f.ReadDirErrs[filepath.Clean(name)]
	f.mu.Unlock()
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return f.FileSystem.ReadDir(name)
}

// Exists implements filesystem.ReadFS
func (f *FaultyFS) Exists(name string) bool {
	f.mu.Lock()
	hide := f.HideOnce[filepath.Clean(name)]
	if hide {
		delete(f.HideOnce, filepath.Clean(name))
	}
	f.mu.Unlock()
	if hide {
		return false
	}
	return f.FileSystem.Exists(name)
}

// CreateExclusive implements filesystem.WriteFS
func (f *FaultyFS) CreateExclusive(name string) (io.WriteCloser, error) {
	f.mu.Lock()
	err := f.CreateErrs[filepath.Clean(name)]
	corrupt := f.Corrupt
	f.mu.Unlock()
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	w, err := f.FileSystem.CreateExclusive(name)
	if err != nil || !corrupt {
		return w, err
	}
	return &corruptingWriter{WriteCloser: w}, nil
}

type corruptingWriter struct {
	io.WriteCloser
}

func (c *corruptingWriter) Close() error {
	if _, err := c.WriteCloser.Write([]byte("#garbage")); err != nil {
		return err
	}
	return c.WriteCloser.Close()
}
