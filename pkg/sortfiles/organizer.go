package sortfiles

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles/filesystem"
)

// DefaultWorkers is the default number of concurrent copy workers.
const DefaultWorkers = 16

// Options controls how a run is executed.
type Options struct {
	// Workers bounds the number of concurrent copies; <= 0 means unbounded.
	Workers int
	// Verify compares checksums of every copy with its source.
	Verify bool
	// DryRun keeps every write in memory.
	DryRun bool
	// LockOutput takes an exclusive lock on the destination for the run.
	LockOutput bool
	// LockDir holds output lock files; empty means the user cache directory.
	LockDir string
	// BaseDir resolves relative source and destination paths; empty means
	// the working directory.
	BaseDir string
}

// DefaultOptions returns sensible defaults for a run.
func DefaultOptions() Options {
	return Options{Workers: DefaultWorkers}
}

// Organizer copies files into extension-named folders. One Organizer owns
// one LockRegistry, shared by every run it performs.
type Organizer struct {
	fs     filesystem.FileSystem
	logger zerolog.Logger
	opts   Options

	paths      *PathHandler
	locks      *LockRegistry
	namer      *Namer
	mkdirGroup singleflight.Group
}

// New creates an Organizer. A nil fsys selects the OS filesystem, or an
// in-memory overlay of it when opts.DryRun is set.
func New(fsys filesystem.FileSystem, logger zerolog.Logger, opts Options) *Organizer {
	if fsys == nil {
		if opts.DryRun {
			fsys = filesystem.NewDryRunFileSystem()
		} else {
			fsys = filesystem.NewOSFileSystem()
		}
	}
	return &Organizer{
		fs:     fsys,
		logger: logger,
		opts:   opts,
		paths:  NewPathHandler(opts.BaseDir),
		locks:  NewLockRegistry(),
		namer:  NewNamer(fsys),
	}
}

// Locks returns the organizer's lock registry.
func (o *Organizer) Locks() *LockRegistry {
	return o.locks
}

// Organize copies every regular file under source into
// dest/<extension>/<name>, running copies concurrently and returning once all
// of them have finished. Per-file and per-directory failures are logged and
// reported in the Result; only invalid input and run-level failures are
// returned as errors.
//
// Cancelling ctx stops new copies from starting; copies in flight finish.
func (o *Organizer) Organize(ctx context.Context, source, dest string) (*Result, error) {
	srcDir, err := o.paths.ResolvePath(source)
	if err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}
	destDir, err := o.paths.ResolvePath(dest)
	if err != nil {
		return nil, fmt.Errorf("resolve output: %w", err)
	}

	result := &Result{
		RunID:       uuid.NewString(),
		Source:      srcDir,
		Destination: destDir,
		DryRun:      o.opts.DryRun,
		Started:     time.Now(),
	}
	logger := o.logger.With().Str("run", result.RunID).Logger()

	if o.opts.LockOutput && !o.opts.DryRun {
		lockPath, unlock, err := acquireOutputLock(o.opts.LockDir, destDir)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("lock", lockPath).Msg("output locked")
		defer func() {
			if err := unlock(); err != nil {
				logger.Warn().Err(err).Msg("failed to release output lock")
			}
		}()
	}

	logger.Debug().
		Str("source", filepath.ToSlash(srcDir)).
		Str("output", filepath.ToSlash(destDir)).
		Bool("dry_run", o.opts.DryRun).
		Msg("organize started")

	walk := NewWalker(o.fs, logger).Walk(srcDir)
	result.Skipped = walk.Skipped
	result.DirErrors = walk.Errors
	result.Files = make([]FileResult, len(walk.Files))

	var g errgroup.Group
	g.SetLimit(workerLimit(o.opts.Workers))
	for i, file := range walk.Files {
		if err := ctx.Err(); err != nil {
			result.Files[i] = FileResult{Entry: file, Status: StatusSkipped, Error: err}
			continue
		}
		g.Go(func() error {
			result.Files[i] = o.copyFile(ctx, logger, file, destDir)
			return nil
		})
	}
	_ = g.Wait()

	result.Duration = time.Since(result.Started)
	logger.Info().
		Int("files", len(result.Files)).
		Int("copied", result.Copied()).
		Int("failed", result.Failed()).
		Int("unreadable_folders", len(result.DirErrors)).
		Dur("elapsed", result.Duration).
		Msg("organize finished")

	return result, nil
}

func workerLimit(workers int) int {
	if workers <= 0 {
		return -1
	}
	return workers
}

// Organize runs one pass with default options on the OS filesystem.
func Organize(ctx context.Context, source, dest string) (*Result, error) {
	return New(nil, DefaultLogger(), DefaultOptions()).Organize(ctx, source, dest)
}
