package sortfiles

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderSummary renders a per-category table of the run followed by totals.
func RenderSummary(r *Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if r.DryRun {
		tw.SetTitle("DRY RUN: " + r.Destination)
	} else {
		tw.SetTitle(r.Destination)
	}

	tw.AppendHeader(table.Row{"Category", "Files", "Size"})
	for _, c := range r.ByCategory() {
		tw.AppendRow(table.Row{c.Category, c.Files, humanize.Bytes(uint64(c.Bytes))})
	}
	tw.AppendFooter(table.Row{"Total", r.Copied(), humanize.Bytes(uint64(r.Bytes()))})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	return tw.Render()
}

// WriteSummary writes the summary table and the failure counts to w.
func WriteSummary(w io.Writer, r *Result) error {
	if _, err := fmt.Fprintln(w, RenderSummary(r)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "failed: %d, not started: %d, skipped entries: %d, unreadable folders: %d, elapsed: %s\n",
		r.Failed(), r.NotStarted(), len(r.Skipped), len(r.DirErrors), r.Duration.Round(time.Millisecond))
	return err
}
