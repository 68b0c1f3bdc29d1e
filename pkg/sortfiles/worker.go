package sortfiles

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles/filesystem"
	"github.com/arthur-debert/sortfiles/pkg/sortfiles/validation"
)

// maxCopyAttempts bounds how often a worker re-runs the namer when the
// exclusive create finds its destination already taken.
const maxCopyAttempts = 16

// copyFile copies one file into its category folder under destRoot. All
// copies of files sharing a case-folded name are serialized, so naming and
// copying happen as one critical section per name. Failures are logged and
// reported in the result; they never escape the worker.
func (o *Organizer) copyFile(ctx context.Context, logger zerolog.Logger, file FileEntry, destRoot string) (res FileResult) {
	start := time.Now()
	res = FileResult{Entry: file}
	defer func() {
		if v := recover(); v != nil {
			res.Status = StatusFailed
			res.Error = &UnhandledError{Value: v}
			logger.Error().
				Err(res.Error).
				Str("source", filepath.ToSlash(file.Path)).
				Msg("copy worker panicked")
		}
		res.Duration = time.Since(start)
	}()

	lock := o.locks.LockFor(file.Name)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		res.Status = StatusSkipped
		res.Error = err
		return res
	}

	for attempt := 1; ; attempt++ {
		res.Destination = o.namer.BuildPath(file, destRoot)

		if err := o.ensureDir(filepath.Dir(res.Destination)); err != nil {
			return o.fail(logger, res, CopyOpMkdir, err)
		}

		n, err := filesystem.CopyFile(o.fs, file.Path, res.Destination)
		if errors.Is(err, fs.ErrExist) && attempt < maxCopyAttempts {
			logger.Debug().
				Str("destination", filepath.ToSlash(res.Destination)).
				Int("attempt", attempt).
				Msg("destination taken by another writer, renaming")
			continue
		}
		if err != nil {
			return o.fail(logger, res, CopyOpCopy, err)
		}
		res.Bytes = n
		break
	}

	if o.opts.Verify {
		if err := validation.VerifyCopy(o.fs, file.Path, res.Destination); err != nil {
			if rmErr := o.fs.Remove(res.Destination); rmErr != nil {
				logger.Warn().
					Err(rmErr).
					Str("destination", filepath.ToSlash(res.Destination)).
					Msg("failed to remove unverified copy")
			}
			return o.fail(logger, res, CopyOpVerify, err)
		}
	}

	res.Status = StatusCopied
	logger.Info().
		Str("source", filepath.ToSlash(file.Path)).
		Str("destination", filepath.ToSlash(res.Destination)).
		Int64("bytes", res.Bytes).
		Msg("file copied")
	return res
}

// ensureDir creates dir once even when many workers ask for it at the same time.
func (o *Organizer) ensureDir(dir string) error {
	_, err, _ := o.mkdirGroup.Do(dir, func() (any, error) {
		return nil, o.fs.MkdirAll(dir, 0o755)
	})
	return err
}

func (o *Organizer) fail(logger zerolog.Logger, res FileResult, op CopyOp, cause error) FileResult {
	res.Status = StatusFailed
	res.Error = &CopyError{
		Op:          op,
		Source:      res.Entry.Path,
		Destination: res.Destination,
		Cause:       cause,
	}
	logger.Error().
		Err(cause).
		Str("op", string(op)).
		Str("source", filepath.ToSlash(res.Entry.Path)).
		Str("destination", filepath.ToSlash(res.Destination)).
		Msg("failed to copy file")
	return res
}
