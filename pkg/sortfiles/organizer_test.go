package sortfiles_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles"
	"github.com/arthur-debert/sortfiles/pkg/sortfiles/filesystem"
	"github.com/arthur-debert/sortfiles/pkg/sortfiles/testutil"
	"github.com/arthur-debert/sortfiles/pkg/sortfiles/validation"
)

func newMemOrganizer(t *testing.T, files map[string]string, opts sortfiles.Options) (*sortfiles.Organizer, *filesystem.AferoFileSystem) {
	t.Helper()
	fsys := testutil.NewMemTree(t, files)
	return sortfiles.New(fsys, zerolog.Nop(), opts), fsys
}

func TestOrganizeSameNameDifferentFolders(t *testing.T) {
	org, fsys := newMemOrganizer(t, map[string]string{
		"/src/a.txt":     "top",
		"/src/sub/a.txt": "nested",
	}, sortfiles.DefaultOptions())

	result, err := org.Organize(context.Background(), "/src", "/dist")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Copied())
	assert.True(t, result.Success())

	tree := testutil.ReadTree(t, fsys.Afero(), "/dist")
	require.Len(t, tree, 2)
	contents := []string{tree["txt/a.txt"], tree["txt/a (1).txt"]}
	sort.Strings(contents)
	assert.Equal(t, []string{"nested", "top"}, contents)
}

func TestOrganizeTwiceKeepsBothCopies(t *testing.T) {
	org, fsys := newMemOrganizer(t, map[string]string{
		"/src/a.txt":      "alpha",
		"/src/pics/b.png": "beta",
		"/src/notes":      "gamma",
	}, sortfiles.DefaultOptions())

	for i := 0; i < 2; i++ {
		result, err := org.Organize(context.Background(), "/src", "/dist")
		require.NoError(t, err)
		require.Equal(t, 3, result.Copied(), "run %d", i+1)
	}

	assert.Equal(t, map[string]string{
		"txt/a.txt":                   "alpha",
		"txt/a (1).txt":               "alpha",
		"png/b.png":                   "beta",
		"png/b (1).png":               "beta",
		"without_extension/notes.":    "gamma",
		"without_extension/notes (1)": "gamma",
	}, testutil.ReadTree(t, fsys.Afero(), "/dist"))
}

func TestOrganizeExtensionlessFiles(t *testing.T) {
	org, fsys := newMemOrganizer(t, map[string]string{
		"/src/readme": "read me",
	}, sortfiles.DefaultOptions())

	result, err := org.Organize(context.Background(), "/src", "/dist")
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	assert.Equal(t, filepath.FromSlash("/dist/without_extension/readme."), result.Files[0].Destination)
	assert.Equal(t, map[string]string{"without_extension/readme.": "read me"},
		testutil.ReadTree(t, fsys.Afero(), "/dist"))
}

func TestOrganizeExtensionlessNameClash(t *testing.T) {
	org, fsys := newMemOrganizer(t, map[string]string{
		"/src/readme":     "a",
		"/src/sub/readme": "b",
	}, sortfiles.DefaultOptions())

	result, err := org.Organize(context.Background(), "/src", "/dist")
	require.NoError(t, err)
	require.Equal(t, 2, result.Copied())

	tree := testutil.ReadTree(t, fsys.Afero(), "/dist")
	assert.Len(t, tree, 2)
	assert.Contains(t, tree, "without_extension/readme.")
	assert.Contains(t, tree, "without_extension/readme (1)")
}

func TestOrganizeSerializesSameName(t *testing.T) {
	const copies = 40

	files := make(map[string]string, copies)
	for i := 0; i < copies; i++ {
		files[fmt.Sprintf("/src/d%02d/Dup.TXT", i)] = fmt.Sprintf("content-%02d", i)
	}
	// Case variants share the lock.
	files["/src/upper/DUP.TXT"] = "upper-variant"

	opts := sortfiles.DefaultOptions()
	opts.Workers = 0
	org, fsys := newMemOrganizer(t, files, opts)

	result, err := org.Organize(context.Background(), "/src", "/dist")
	require.NoError(t, err)
	require.Equal(t, copies+1, result.Copied())
	assert.Equal(t, 1, org.Locks().Len())

	tree := testutil.ReadTree(t, fsys.Afero(), "/dist")
	require.Len(t, tree, copies+1)

	// Every source content lands exactly once.
	seen := make(map[string]int)
	for _, content := range tree {
		seen[content]++
	}
	for _, content := range files {
		assert.Equal(t, 1, seen[content], "content %q", content)
	}

	// Counters are gap free: Dup.TXT, Dup (1).TXT, ..., Dup (39).TXT.
	destinations := make(map[string]bool)
	for _, f := range result.Files {
		destinations[filepath.Base(f.Destination)] = true
	}
	assert.Len(t, destinations, copies+1)
	assert.True(t, destinations["Dup.TXT"])
	assert.True(t, destinations["DUP.TXT"])
	for n := 1; n < copies; n++ {
		assert.True(t, destinations[fmt.Sprintf("Dup (%d).TXT", n)], "missing counter %d", n)
	}
}

func TestOrganizeUnreadableSubdirectory(t *testing.T) {
	base := testutil.NewMemTree(t, map[string]string{
		"/src/ok/keep.txt":     "keep",
		"/src/locked/lost.txt": "lost",
		"/src/top.md":          "top",
	})
	fsys := testutil.NewFaultyFS(base)
	fsys.ReadDirErrs["/src/locked"] = fs.ErrPermission

	org := sortfiles.New(fsys, zerolog.Nop(), sortfiles.DefaultOptions())
	result, err := org.Organize(context.Background(), "/src", "/dist")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Copied())
	assert.Len(t, result.DirErrors, 1)
	assert.False(t, result.Success())
	assert.Equal(t, map[string]string{
		"txt/keep.txt": "keep",
		"md/top.md":    "top",
	}, testutil.ReadTree(t, base.Afero(), "/dist"))
}

func TestOrganizeCopyFailureIsContained(t *testing.T) {
	base := testutil.NewMemTree(t, map[string]string{
		"/src/bad.txt":  "bad",
		"/src/good.txt": "good",
		"/src/fine.bin": "fine",
	})
	fsys := testutil.NewFaultyFS(base)
	fsys.CreateErrs["/dist/txt/bad.txt"] = fs.ErrPermission

	var buf bytes.Buffer
	org := sortfiles.New(fsys, sortfiles.NewLogger(&buf, zerolog.InfoLevel), sortfiles.DefaultOptions())
	result, err := org.Organize(context.Background(), "/src", "/dist")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Copied())
	assert.Equal(t, 1, result.Failed())

	var copyErr *sortfiles.CopyError
	var failed sortfiles.FileResult
	for _, f := range result.Files {
		if !f.OK() {
			failed = f
		}
	}
	require.True(t, errors.As(failed.Error, &copyErr))
	assert.Equal(t, sortfiles.CopyOpCopy, copyErr.Op)
	assert.Equal(t, filepath.FromSlash("/src/bad.txt"), copyErr.Source)
	assert.Equal(t, filepath.FromSlash("/dist/txt/bad.txt"), copyErr.Destination)
	assert.True(t, errors.Is(copyErr, fs.ErrPermission))

	assert.Contains(t, buf.String(), "failed to copy file")
	assert.Contains(t, buf.String(), "file copied")
	assert.Len(t, result.Errors(), 1)
}

func TestOrganizeRenamesWhenDestinationAppearsLate(t *testing.T) {
	base := testutil.NewMemTree(t, map[string]string{
		"/src/a.txt":      "new",
		"/dist/txt/a.txt": "external",
	})
	fsys := testutil.NewFaultyFS(base)
	// The namer misses the existing file once, as if another writer created
	// it between the check and the copy.
	fsys.HideOnce["/dist/txt/a.txt"] = true

	org := sortfiles.New(fsys, zerolog.Nop(), sortfiles.DefaultOptions())
	result, err := org.Organize(context.Background(), "/src", "/dist")
	require.NoError(t, err)
	require.Equal(t, 1, result.Copied())

	assert.Equal(t, filepath.FromSlash("/dist/txt/a (1).txt"), result.Files[0].Destination)
	assert.Equal(t, map[string]string{
		"txt/a.txt":     "external",
		"txt/a (1).txt": "new",
	}, testutil.ReadTree(t, base.Afero(), "/dist"))
}

func TestOrganizeVerify(t *testing.T) {
	base := testutil.NewMemTree(t, map[string]string{"/src/a.txt": "payload"})
	fsys := testutil.NewFaultyFS(base)
	fsys.Corrupt = true

	opts := sortfiles.DefaultOptions()
	opts.Verify = true
	org := sortfiles.New(fsys, zerolog.Nop(), opts)

	result, err := org.Organize(context.Background(), "/src", "/dist")
	require.NoError(t, err)
	require.Equal(t, 1, result.Failed())

	var copyErr *sortfiles.CopyError
	require.True(t, errors.As(result.Files[0].Error, &copyErr))
	assert.Equal(t, sortfiles.CopyOpVerify, copyErr.Op)
	var mismatch *validation.MismatchError
	assert.True(t, errors.As(copyErr, &mismatch))

	// The rejected copy must not occupy the name for the next run.
	assert.False(t, fsys.Exists("/dist/txt/a.txt"))
	fsys.Corrupt = false
	result, err = org.Organize(context.Background(), "/src", "/dist")
	require.NoError(t, err)
	require.Equal(t, 1, result.Copied())
	assert.Equal(t, filepath.FromSlash("/dist/txt/a.txt"), result.Files[0].Destination)
}

func TestOrganizeInvalidInput(t *testing.T) {
	org, _ := newMemOrganizer(t, nil, sortfiles.DefaultOptions())

	_, err := org.Organize(context.Background(), "", "/dist")
	assert.True(t, errors.Is(err, sortfiles.ErrInvalidInput))

	_, err = org.Organize(context.Background(), "/src", "")
	assert.True(t, errors.Is(err, sortfiles.ErrInvalidInput))
}

func TestOrganizeRelativePaths(t *testing.T) {
	opts := sortfiles.DefaultOptions()
	opts.BaseDir = "/work"
	org, fsys := newMemOrganizer(t, map[string]string{"/work/in/x.csv": "1,2"}, opts)

	result, err := org.Organize(context.Background(), "in", "out")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/work/in"), result.Source)
	assert.Equal(t, filepath.FromSlash("/work/out"), result.Destination)
	assert.True(t, fsys.IsFile("/work/out/csv/x.csv"))
}

func TestOrganizeCancelled(t *testing.T) {
	org, fsys := newMemOrganizer(t, map[string]string{
		"/src/a.txt": "a",
		"/src/b.txt": "b",
	}, sortfiles.DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := org.Organize(ctx, "/src", "/dist")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Copied())
	assert.Equal(t, 2, result.NotStarted())
	for _, f := range result.Files {
		assert.True(t, errors.Is(f.Error, context.Canceled))
	}
	assert.False(t, fsys.Exists("/dist"))
}

func TestOrganizeOnDisk(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dist := filepath.Join(root, "dist")
	testutil.WriteOSTree(t, src, map[string]string{
		"a.txt":     "top",
		"sub/a.txt": "nested",
		"readme":    "plain",
	})

	opts := sortfiles.DefaultOptions()
	opts.LockOutput = true
	opts.LockDir = t.TempDir()
	opts.Verify = true
	org := sortfiles.New(nil, zerolog.Nop(), opts)

	result, err := org.Organize(context.Background(), src, dist)
	require.NoError(t, err)
	require.True(t, result.Success())

	tree := testutil.ReadOSTree(t, dist)
	assert.Len(t, tree, 3)
	assert.Equal(t, "plain", tree["without_extension/readme."])
	assert.ElementsMatch(t, []string{"top", "nested"}, []string{tree["txt/a.txt"], tree["txt/a (1).txt"]})
	assert.FileExists(t, sortfiles.OutputLockPath(opts.LockDir, dist))
}

func TestOrganizeOutputNestedInSource(t *testing.T) {
	root := t.TempDir()
	dist := filepath.Join(root, "dist")
	testutil.WriteOSTree(t, root, map[string]string{"a.txt": "a"})

	opts := sortfiles.DefaultOptions()
	opts.LockOutput = true
	opts.LockDir = t.TempDir()
	org := sortfiles.New(nil, zerolog.Nop(), opts)

	result, err := org.Organize(context.Background(), root, dist)
	require.NoError(t, err)
	require.True(t, result.Success())
	assert.Equal(t, 1, result.Copied())

	assert.Equal(t, map[string]string{"txt/a.txt": "a"}, testutil.ReadOSTree(t, dist))
}

func TestOrganizeDryRun(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dist := filepath.Join(root, "dist")
	testutil.WriteOSTree(t, src, map[string]string{
		"a.txt":     "top",
		"sub/a.txt": "nested",
	})

	opts := sortfiles.DefaultOptions()
	opts.DryRun = true
	opts.LockOutput = true
	org := sortfiles.New(nil, zerolog.Nop(), opts)

	result, err := org.Organize(context.Background(), src, dist)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.Copied())

	var names []string
	for _, f := range result.Files {
		names = append(names, filepath.Base(f.Destination))
	}
	assert.ElementsMatch(t, []string{"a.txt", "a (1).txt"}, names)

	_, err = os.Stat(dist)
	assert.True(t, os.IsNotExist(err), "dry run must not create %s", dist)
}

func TestOrganizeOutputLockContention(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dist := filepath.Join(root, "dist")
	testutil.WriteOSTree(t, src, map[string]string{"a.txt": "a"})
	lockDir := t.TempDir()

	held := flock.New(sortfiles.OutputLockPath(lockDir, dist))
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)

	opts := sortfiles.DefaultOptions()
	opts.LockOutput = true
	opts.LockDir = lockDir
	org := sortfiles.New(nil, zerolog.Nop(), opts)

	_, err = org.Organize(context.Background(), src, dist)
	assert.True(t, errors.Is(err, sortfiles.ErrOutputLocked), "got %v", err)
	assert.NoDirExists(t, dist)

	require.NoError(t, held.Unlock())

	result, err := org.Organize(context.Background(), src, dist)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Copied())
}
