package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sir_venger/fileforge/internal/config"
	"github.com/sir_venger/fileforge/internal/desktop"
	"github.com/sir_venger/fileforge/internal/diskspace"
	"github.com/sir_venger/fileforge/internal/forge"
	"github.com/sir_venger/fileforge/internal/logging"
	"github.com/sir_venger/fileforge/internal/progress"
	"github.com/sir_venger/fileforge/internal/session"
	"github.com/sir_venger/fileforge/pkg/bytesize"
)

var rootFlags struct {
	config         string
	dir            string
	progress       string
	skipSpaceCheck bool
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fileforge",
		Short:         "Create a file of a given size filled with random bytes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	cmd.Flags().StringVar(
		&rootFlags.config,
		"config",
		"",
		"path to YAML config (default $CONFIG_PATH or ./fileforge.yaml)",
	)
	cmd.Flags().StringVar(
		&rootFlags.dir,
		"dir",
		"",
		"directory for the new file (default ~/Desktop)",
	)
	cmd.Flags().StringVar(
		&rootFlags.progress,
		"progress",
		"",
		"progress output: lines, bar or none",
	)
	cmd.Flags().BoolVar(
		&rootFlags.skipSpaceCheck,
		"skip-space-check",
		false,
		"do not check free space before writing",
	)
	return cmd
}

// main — единственное место, где ошибка превращается в сообщение и код выхода.
func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stdout, message(err))
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootFlags.config)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.TargetDir = rootFlags.dir
	}
	if flags.Changed("progress") {
		cfg.Progress = rootFlags.progress
	}
	if flags.Changed("skip-space-check") {
		cfg.SkipSpaceCheck = rootFlags.skipSpaceCheck
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()
	log = log.With(zap.String("run_id", uuid.NewString()))

	dir, err := desktop.Resolve(cfg.TargetDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var space diskspace.Checker
	if !cfg.SkipSpaceCheck {
		space = diskspace.Volume{}
	}

	out := cmd.OutOrStdout()
	s := session.New(session.Deps{
		In:    cmd.InOrStdin(),
		Out:   out,
		Dir:   dir,
		Space: space,
		Writer: func(size int64) (session.FileWriter, error) {
			rep, err := progress.New(cfg.Progress, out, size, forge.BlockSize)
			if err != nil {
				return nil, err
			}
			return forge.New(forge.Deps{Progress: rep, Log: log}), nil
		},
		Log: log,
	})

	log.Debug("session started", zap.String("dir", dir), zap.String("progress", cfg.Progress))
	outcome, err := s.Run(ctx)
	if err != nil {
		log.Debug("session failed", zap.Stringer("state", s.State()), zap.Error(err))
		return err
	}

	log.Info("session finished",
		zap.String("path", outcome.Path),
		zap.String("size", bytesize.Human(outcome.Size)),
	)
	return nil
}
