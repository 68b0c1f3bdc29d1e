package filesystem

import (
	"fmt"
	"io"
)

// CopyFile copies the contents of src into a newly created dst and returns
// the number of bytes written. It never overwrites: if dst already exists
// the returned error wraps fs.ErrExist. A partially written dst is removed.
func CopyFile(fsys FileSystem, src, dst string) (int64, error) {
	in, err := fsys.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := fsys.CreateExclusive(dst)
	if err != nil {
		return 0, fmt.Errorf("create destination: %w", err)
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = fsys.Remove(dst)
		return n, fmt.Errorf("write destination: %w", err)
	}
	return n, nil
}
