package cli

import (
	"context"

	"github.com/aretw0/sceneflow/internal/config"
	"github.com/aretw0/sceneflow/pkg/runner"
)

// RunSession executes the installation once, until ctx is done or quit is requested.
func RunSession(ctx context.Context, cfg config.Config, s *surfaces) error {
	r, err := newRun(cfg, s)
	if err != nil {
		return err
	}
	return r.Run(ctx)
}

// newRun builds a fresh engine, director and frame loop over the open surfaces.
func newRun(cfg config.Config, s *surfaces) (*runner.Runner, error) {
	engine, err := OpenEngine(cfg, s.logger, s.engineOptions()...)
	if err != nil {
		return nil, err
	}

	director := runner.NewDirector(engine, runner.WithDirectorLogger(s.logger))
	s.bind(director)
	s.logger.Info("installation ready", "catalog", engine.Name, "entry", engine.EntryScene())

	return runner.New(director, s.runnerOptions(cfg)...), nil
}
