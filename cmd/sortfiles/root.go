package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// errRunFailed is returned in strict mode when the run logged failures.
var errRunFailed = errors.New("one or more files could not be copied")

// Execute builds the root command and runs it. It is called by main.main().
func Execute() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	source     string
	output     string
	configPath string
	logLevel   string
	workers    int
	verify     bool
	dryRun     bool
	summary    bool
	strict     bool
	noLock     bool
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "sortfiles",
		Short: "Copy and sort files by extension",
		Long: `sortfiles recursively copies every regular file from a source folder into
subfolders of an output folder named after each file's extension. Files
without an extension go to "without_extension". Name clashes are resolved
by appending " (1)", " (2)", ... to the file name; nothing is overwritten.

Errors are logged and the command still exits 0 unless --strict is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, flags)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVarP(&flags.source, "source", "s", "", "Source folder")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "dist", "Output folder")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Config file (default: ./sortfiles.toml if present)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 16, "Maximum concurrent copies (0 = unbounded)")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "Verify every copy with a checksum")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Simulate the run without writing anything")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "Print a per-extension summary table")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Exit non-zero when any file or folder failed")
	cmd.Flags().BoolVar(&flags.noLock, "no-lock", false, "Do not lock the output folder")
	_ = cmd.MarkFlagRequired("source")

	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Print the version number of sortfiles`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sortfiles version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
