package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles"
	"github.com/arthur-debert/sortfiles/pkg/sortfiles/config"
)

func runOrganize(cmd *cobra.Command, flags *rootFlags) error {
	cfg, cfgPath, cfgExists, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := sortfiles.LogLevelFromString(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := sortfiles.NewLogger(cmd.ErrOrStderr(), level)
	if cfgExists {
		logger.Debug().Str("config", cfgPath).Msg("loaded config")
	}

	start := time.Now()
	ok := organize(cmd, logger, flags.source, cfg)
	logger.Info().
		Float64("execution_time_s", time.Since(start).Seconds()).
		Msg("file copying completed")

	if !ok && cfg.Strict {
		return errRunFailed
	}
	return nil
}

// organize performs the run and reports whether it was fully successful.
// Everything, including panics, is logged here and never escapes.
func organize(cmd *cobra.Command, logger zerolog.Logger, source string, cfg *config.Config) (ok bool) {
	defer func() {
		if v := recover(); v != nil {
			logger.Error().Err(&sortfiles.UnhandledError{Value: v}).Msg("file copying aborted")
			ok = false
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := sortfiles.New(nil, logger, cfg.Options()).Organize(ctx, source, cfg.Output)
	if err != nil {
		logger.Error().Err(err).Msg("file copying failed")
		return false
	}

	if cfg.Summary {
		if err := sortfiles.WriteSummary(cmd.OutOrStdout(), result); err != nil {
			logger.Warn().Err(err).Msg("failed to write summary")
		}
	}
	return result.Success()
}

// applyFlags overrides config values with flags set on the command line.
func applyFlags(cmd *cobra.Command, flags *rootFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("output") {
		cfg.Output = flags.output
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("workers") {
		cfg.Workers = flags.workers
	}
	if changed("verify") {
		cfg.Verify = flags.verify
	}
	if changed("dry-run") {
		cfg.DryRun = flags.dryRun
	}
	if changed("summary") {
		cfg.Summary = flags.summary
	}
	if changed("strict") {
		cfg.Strict = flags.strict
	}
	if changed("no-lock") {
		cfg.LockOutput = !flags.noLock
	}
}
