package sortfiles

import (
	"errors"
	"fmt"
)

// --- Error Types ---

// ErrInvalidInput is returned when a path argument is empty.
var ErrInvalidInput = errors.New("invalid input")

// DirectoryReadError represents a directory that could not be listed during
// a walk. The walk recovers from it: the subtree contributes no files.
type DirectoryReadError struct {
	Path  string
	Cause error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("failed to process folder %q: %v", e.Path, e.Cause)
}

func (e *DirectoryReadError) Unwrap() error {
	return e.Cause
}

// CopyOp names the step of a file copy that failed.
type CopyOp string

const (
	CopyOpMkdir  CopyOp = "mkdir"
	CopyOpCopy   CopyOp = "copy"
	CopyOpVerify CopyOp = "verify"
)

// CopyError represents a failure to copy one file. It is contained to that file.
type CopyError struct {
	Op          CopyOp
	Source      string
	Destination string
	Cause       error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy file %q to %q (%s): %v", e.Source, e.Destination, e.Op, e.Cause)
}

func (e *CopyError) Unwrap() error {
	return e.Cause
}

// UnhandledError wraps anything unexpected (including recovered panics)
// that reached the top of a worker or of a run.
type UnhandledError struct {
	Value any
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("unhandled error: %v", e.Value)
}

func (e *UnhandledError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrOutputLocked is returned when another run holds the destination lock.
var ErrOutputLocked = errors.New("another sortfiles run is writing to the output directory")
