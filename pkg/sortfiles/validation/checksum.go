package validation

import (
	"crypto/md5"
	"fmt"
	"io"
	"time"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles/filesystem"
)

// ChecksumRecord stores file checksum information
type ChecksumRecord struct {
	Path         string
	MD5          string
	Size         int64
	ChecksumTime time.Time
}

// ComputeFileChecksum calculates the MD5 checksum of a file's contents.
func ComputeFileChecksum(fsys filesystem.ReadFS, filePath string) (*ChecksumRecord, error) {
	file, err := fsys.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s for checksumming: %w", filePath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	hash := md5.New()
	size, err := io.Copy(hash, file)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for %s: %w", filePath, err)
	}

	return &ChecksumRecord{
		Path:         filePath,
		MD5:          fmt.Sprintf("%x", hash.Sum(nil)),
		Size:         size,
		ChecksumTime: time.Now(),
	}, nil
}

// MismatchError reports that a copy does not match its source.
type MismatchError struct {
	Source      *ChecksumRecord
	Destination *ChecksumRecord
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: %s (%s, %d bytes) != %s (%s, %d bytes)",
		e.Source.Path, e.Source.MD5, e.Source.Size,
		e.Destination.Path, e.Destination.MD5, e.Destination.Size)
}

// VerifyCopy checks that dst has the same content as src.
func VerifyCopy(fsys filesystem.ReadFS, src, dst string) error {
	srcSum, err := ComputeFileChecksum(fsys, src)
	if err != nil {
		return err
	}
	dstSum, err := ComputeFileChecksum(fsys, dst)
	if err != nil {
		return err
	}
	if srcSum.MD5 != dstSum.MD5 || srcSum.Size != dstSum.Size {
		return &MismatchError{Source: srcSum, Destination: dstSum}
	}
	return nil
}
