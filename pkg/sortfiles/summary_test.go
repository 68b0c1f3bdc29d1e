package sortfiles_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles"
)

func sampleResult() *sortfiles.Result {
	return &sortfiles.Result{
		Destination: "/dist",
		Files: []sortfiles.FileResult{
			{Entry: sortfiles.NewFileEntry("/src/a.txt"), Status: sortfiles.StatusCopied, Bytes: 1500},
			{Entry: sortfiles.NewFileEntry("/src/b.txt"), Status: sortfiles.StatusCopied, Bytes: 500},
			{Entry: sortfiles.NewFileEntry("/src/c.png"), Status: sortfiles.StatusCopied, Bytes: 2_000_000},
			{Entry: sortfiles.NewFileEntry("/src/d.png"), Status: sortfiles.StatusFailed, Error: errors.New("boom")},
		},
		Skipped:   []string{"/src/link"},
		DirErrors: []*sortfiles.DirectoryReadError{{Path: "/src/locked", Cause: errors.New("denied")}},
		Duration:  1500 * time.Millisecond,
	}
}

func TestResultAggregates(t *testing.T) {
	r := sampleResult()

	assert.Equal(t, 3, r.Copied())
	assert.Equal(t, 1, r.Failed())
	assert.Equal(t, int64(2_002_000), r.Bytes())
	assert.False(t, r.Success())
	assert.Len(t, r.Errors(), 2)
	assert.Equal(t, []sortfiles.CategoryStats{
		{Category: "png", Files: 1, Bytes: 2_000_000},
		{Category: "txt", Files: 2, Bytes: 2000},
	}, r.ByCategory())
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sortfiles.WriteSummary(&buf, sampleResult()))

	// Headers and footers are upper-cased by the table style.
	out := strings.ToLower(buf.String())
	for _, want := range []string{"/dist", "category", "png", "txt", "2.0 mb", "total", "failed: 1", "unreadable folders: 1", "1.5s"} {
		assert.True(t, strings.Contains(out, want), "summary missing %q:\n%s", want, out)
	}
}

func TestRenderSummaryDryRun(t *testing.T) {
	r := sampleResult()
	r.DryRun = true
	assert.Contains(t, sortfiles.RenderSummary(r), "DRY RUN")
}
