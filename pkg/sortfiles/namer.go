package sortfiles

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles/filesystem"
)

// Namer computes destination paths for files.
type Namer struct {
	fs filesystem.ReadFS
}

// NewNamer creates a namer that checks for collisions on fsys.
func NewNamer(fsys filesystem.ReadFS) *Namer {
	return &Namer{fs: fsys}
}

// BuildPath returns destRoot/<category>/<stem>.<ext>, or the first
// "<stem> (n).<ext>" with n = 1, 2, ... that does not exist yet.
// Extensionless files get a trailing dot on the first candidate only:
// "readme" -> "readme.", then "readme (1)", "readme (2)", ...
//
// The existence checks are not atomic with the later copy; callers that
// share a file name must serialize through a LockRegistry.
func (n *Namer) BuildPath(file FileEntry, destRoot string) string {
	dir := filepath.Join(destRoot, file.Category())

	candidate := filepath.Join(dir, file.Stem+"."+file.Ext)
	for counter := 1; n.fs.Exists(candidate); counter++ {
		candidate = filepath.Join(dir, numberedName(file, counter))
	}
	return candidate
}

func numberedName(file FileEntry, counter int) string {
	if file.Ext == "" {
		return fmt.Sprintf("%s (%d)", file.Stem, counter)
	}
	return fmt.Sprintf("%s (%d).%s", file.Stem, counter, file.Ext)
}
