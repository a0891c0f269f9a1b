package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/sceneflow"
	"github.com/aretw0/sceneflow/internal/config"
)

// LoadConfig reads the host configuration and applies command-line overrides.
func LoadConfig(opts RunOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if opts.Catalog != "" {
		cfg.Catalog = opts.Catalog
	}
	if opts.Entry != "" {
		cfg.Entry = opts.Entry
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	return cfg, cfg.Validate()
}

// OpenEngine initializes an engine over the configured catalog.
func OpenEngine(cfg config.Config, logger *slog.Logger, extra ...sceneflow.Option) (*sceneflow.Engine, error) {
	opts := []sceneflow.Option{sceneflow.WithLogger(logger)}
	if cfg.Entry != "" {
		opts = append(opts, sceneflow.WithEntryScene(cfg.Entry))
	}
	opts = append(opts, extra...)

	engine, err := sceneflow.New(cfg.Catalog, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
