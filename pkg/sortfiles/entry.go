package sortfiles

import (
	"path/filepath"
	"strings"
)

// WithoutExtension is the category for files that have no extension.
const WithoutExtension = "without_extension"

// FileEntry is a regular file discovered during a walk.
type FileEntry struct {
	// Path is the absolute path of the file.
	Path string
	// Name is the base name, used as the lock key.
	Name string
	Stem string
	// Ext is the extension without its leading dot; empty when there is none.
	Ext string
}

// NewFileEntry derives name, stem and extension from path. The extension is
// whatever follows the last dot of the base name, except that a single
// leading dot (".bashrc") does not start an extension.
func NewFileEntry(path string) FileEntry {
	name := filepath.Base(path)
	stem, ext := splitName(name)
	return FileEntry{Path: path, Name: name, Stem: stem, Ext: ext}
}

// Category returns the destination folder name for the entry.
func (e FileEntry) Category() string {
	if e.Ext == "" {
		return WithoutExtension
	}
	return e.Ext
}

func splitName(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i+1:]
}
