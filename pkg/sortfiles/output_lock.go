package sortfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// OutputLockPath returns the lock file guarding destDir. Lock files live in
// lockDir, or in the user cache directory when lockDir is empty, and never
// inside the destination: a destination nested in the source would
// otherwise pick its own lock file up as input.
func OutputLockPath(lockDir, destDir string) string {
	if lockDir == "" {
		lockDir = defaultLockDir()
	}
	key := uuid.NewSHA1(uuid.NameSpaceURL, []byte(filepath.Clean(destDir)))
	return filepath.Join(lockDir, key.String()+".lock")
}

func defaultLockDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "sortfiles", "locks")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "sortfiles", "locks")
	}
	return filepath.Join(home, ".cache", "sortfiles", "locks")
}

// acquireOutputLock takes a non-blocking lock for destDir so two runs cannot
// write into the same destination at once.
func acquireOutputLock(lockDir, destDir string) (string, func() error, error) {
	path := OutputLockPath(lockDir, destDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return "", nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrOutputLocked, destDir)
	}
	return path, lock.Unlock, nil
}
