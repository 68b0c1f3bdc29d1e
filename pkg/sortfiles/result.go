package sortfiles

import (
	"sort"
	"time"
)

// FileStatus is the outcome of one file.
type FileStatus string

const (
	StatusCopied  FileStatus = "copied"
	StatusFailed  FileStatus = "failed"
	StatusSkipped FileStatus = "skipped"
)

// FileResult holds the outcome of copying a single file.
type FileResult struct {
	Entry       FileEntry
	Destination string
	Status      FileStatus
	Bytes       int64
	Error       error
	Duration    time.Duration
}

// OK reports whether the file was copied.
func (r FileResult) OK() bool {
	return r.Status == StatusCopied
}

// CategoryStats aggregates copied files per extension category.
type CategoryStats struct {
	Category string
	Files    int
	Bytes    int64
}

// Result holds the overall outcome of an Organize run.
type Result struct {
	RunID       string
	Source      string
	Destination string
	DryRun      bool
	Files       []FileResult
	// Skipped lists non-regular entries found by the walk.
	Skipped   []string
	DirErrors []*DirectoryReadError
	Started   time.Time
	Duration  time.Duration
}

// Copied returns the number of files copied.
func (r *Result) Copied() int {
	return r.count(StatusCopied)
}

// Failed returns the number of files that could not be copied.
func (r *Result) Failed() int {
	return r.count(StatusFailed)
}

// NotStarted returns the number of files skipped because the run was cancelled.
func (r *Result) NotStarted() int {
	return r.count(StatusSkipped)
}

// Bytes returns the total number of bytes copied.
func (r *Result) Bytes() int64 {
	var total int64
	for _, f := range r.Files {
		if f.OK() {
			total += f.Bytes
		}
	}
	return total
}

// Success reports whether every discovered file was copied and every
// directory could be read.
func (r *Result) Success() bool {
	return r.Copied() == len(r.Files) && len(r.DirErrors) == 0
}

// Errors returns every per-file and per-directory error of the run.
func (r *Result) Errors() []error {
	var errs []error
	for _, d := range r.DirErrors {
		errs = append(errs, d)
	}
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

// ByCategory returns copied file counts per category, sorted by name.
func (r *Result) ByCategory() []CategoryStats {
	index := make(map[string]*CategoryStats)
	for _, f := range r.Files {
		if !f.OK() {
			continue
		}
		cat := f.Entry.Category()
		stats, ok := index[cat]
		if !ok {
			stats = &CategoryStats{Category: cat}
			index[cat] = stats
		}
		stats.Files++
		stats.Bytes += f.Bytes
	}

	out := make([]CategoryStats, 0, len(index))
	for _, stats := range index {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func (r *Result) count(status FileStatus) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}
