package sortfiles

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolvePath returns path as an absolute path. Absolute paths are returned
// unchanged; relative ones are joined onto base, or onto the working
// directory when base is empty.
func ResolvePath(path, base string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("the path can not be empty: %w", ErrInvalidInput)
	}
	if filepath.IsAbs(path) {
		return path, nil
	}

	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		base = wd
	} else if !filepath.IsAbs(base) {
		abs, err := filepath.Abs(base)
		if err != nil {
			return "", fmt.Errorf("resolve base %q: %w", base, err)
		}
		base = abs
	}

	return filepath.Join(base, path), nil
}

// PathHandler resolves paths against a fixed base directory.
type PathHandler struct {
	base string
}

// NewPathHandler creates a path handler. An empty base means the working
// directory at resolution time.
func NewPathHandler(base string) *PathHandler {
	return &PathHandler{base: base}
}

// ResolvePath resolves a path against the handler's base.
func (ph *PathHandler) ResolvePath(path string) (string, error) {
	return ResolvePath(path, ph.base)
}
