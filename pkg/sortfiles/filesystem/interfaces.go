package filesystem

import (
	"io"
	"io/fs"
)

// ReadFS defines the read side of the filesystem used by the organizer.
type ReadFS interface {
	Open(name string) (io.ReadCloser, error)
	Exists(name string) bool
	IsDir(name string) bool
	IsFile(name string) bool
	// ReadDir lists the children of a directory without following symlinks.
	ReadDir(name string) ([]fs.FileInfo, error)
}

// WriteFS defines the write operations on a file system.
type WriteFS interface {
	MkdirAll(path string, perm fs.FileMode) error
	// CreateExclusive creates name for writing and fails with fs.ErrExist
	// if anything already exists at that path.
	CreateExclusive(name string) (io.WriteCloser, error)
	Remove(name string) error
}

// FileSystem combines read and write operations.
type FileSystem interface {
	ReadFS
	WriteFS
}
