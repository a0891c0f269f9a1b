// Package cli wires the sceneflow host: configuration, engine, operator
// surfaces and the frame loop behind the cobra commands.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/aretw0/sceneflow"
	"github.com/aretw0/sceneflow/internal/presentation/tui"
	"github.com/aretw0/sceneflow/pkg/runner"
)

// RunOptions contains all the configuration for the Run command.
// Non-empty Catalog, Entry and LogLevel override the config file.
type RunOptions struct {
	ConfigPath string
	Catalog    string
	Entry      string
	LogLevel   string
	Headless   bool
	Watch      bool

	Stdin  io.Reader
	Stdout io.Writer
}

func (o RunOptions) withDefaults() RunOptions {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	return o
}

// Execute runs the installation until a signal, a quit key or, without
// --watch, a fatal error.
func Execute(ctx context.Context, opts RunOptions) error {
	opts = opts.withDefaults()

	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := createLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	if !opts.Headless && !isTerminal(opts.Stdout) {
		logger.Warn("stdout is not a terminal, running headless")
		opts.Headless = true
	}
	if opts.Headless && isTerminal(opts.Stdout) {
		tui.PrintBanner(opts.Stdout, sceneflow.Version)
	}

	signals := runner.NewSignalManager(ctx)
	defer signals.Stop()
	ctx = signals.Context()

	s, err := openSurfaces(ctx, cfg, opts, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.Watch {
		return handleExecutionError(RunWatch(ctx, cfg, s, opts.Stdout))
	}
	return handleExecutionError(RunSession(ctx, cfg, s))
}
