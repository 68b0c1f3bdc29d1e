package sortfiles

import (
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles/filesystem"
)

// WalkResult is the materialized outcome of a walk.
type WalkResult struct {
	Files []FileEntry
	// Skipped holds paths of entries that are neither directories nor
	// regular files.
	Skipped []string
	Errors  []*DirectoryReadError
}

// Walker recursively lists regular files.
type Walker struct {
	fs     filesystem.ReadFS
	logger zerolog.Logger
}

// NewWalker creates a walker over fsys.
func NewWalker(fsys filesystem.ReadFS, logger zerolog.Logger) *Walker {
	return &Walker{fs: fsys, logger: logger}
}

// Walk visits every directory under root. Unreadable directories are logged
// and recorded; they never abort the walk. Symlinks are not followed.
func (w *Walker) Walk(root string) WalkResult {
	var result WalkResult

	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		w.logger.Debug().Str("path", filepath.ToSlash(dir)).Msg("process folder")

		entries, err := w.fs.ReadDir(dir)
		if err != nil {
			readErr := &DirectoryReadError{Path: dir, Cause: err}
			w.logger.Error().Err(err).Str("path", filepath.ToSlash(dir)).Msg("failed to process folder")
			result.Errors = append(result.Errors, readErr)
			continue
		}

		var subdirs []string
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			switch mode := entry.Mode(); {
			case mode.IsDir():
				subdirs = append(subdirs, path)
			case mode.IsRegular():
				result.Files = append(result.Files, NewFileEntry(path))
			default:
				w.logger.Warn().
					Str("path", filepath.ToSlash(path)).
					Str("type", typeName(mode)).
					Msg("skip non-regular entry")
				result.Skipped = append(result.Skipped, path)
			}
		}

		// Push in reverse so subdirectories are visited in name order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	return result
}

func typeName(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeSymlink != 0:
		return "symlink"
	case mode&fs.ModeNamedPipe != 0:
		return "pipe"
	case mode&fs.ModeSocket != 0:
		return "socket"
	case mode&fs.ModeDevice != 0:
		return "device"
	default:
		return "irregular"
	}
}
