package sceneflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/sceneflow/internal/runtime"
	"github.com/aretw0/sceneflow/internal/validator"
	"github.com/aretw0/sceneflow/pkg/adapters/file"
	loamAdapter "github.com/aretw0/sceneflow/pkg/adapters/loam"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
)

// Version is the current release of the sceneflow module.
const Version = "0.4.0"

// Engine is the high-level entry point for the sceneflow library.
// It owns the scene catalog and builds one runtime controller per scene activation.
type Engine struct {
	catalog    ports.SceneCatalog
	entry      string
	hooks      domain.LifecycleHooks
	opacityOut ports.OpacityOutput
	volumeOut  ports.VolumeOutput
	logger     *slog.Logger
	Name       string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog injects a custom SceneCatalog, bypassing the default catalog initialization.
func WithCatalog(c ports.SceneCatalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls are merged.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = domain.MergeHooks(e.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithOpacityOutput binds the fade overlay shared by every scene.
func WithOpacityOutput(out ports.OpacityOutput) Option {
	return func(e *Engine) {
		e.opacityOut = out
	}
}

// WithVolumeOutput binds the background music volume shared by every scene.
func WithVolumeOutput(out ports.VolumeOutput) Option {
	return func(e *Engine) {
		e.volumeOut = out
	}
}

// WithEntryScene configures the first scene, overriding the is_entry flag of the catalog.
func WithEntryScene(name string) Option {
	return func(e *Engine) {
		e.entry = name
	}
}

// New initializes a new sceneflow Engine.
// By default the catalog is read from path: a directory is opened as a Loam
// repository and a .yaml/.yml file as a single-file catalog.
// If WithCatalog is provided, path can be empty and is used as a label only.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.catalog == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom catalog is provided")
		}
		catalog, err := OpenCatalog(path)
		if err != nil {
			return nil, err
		}
		eng.catalog = catalog
	}
	if path != "" {
		eng.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	// Ensure logger is initialized (so we don't pass nil to runtime, which would overwrite its default)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("catalog", eng.Name)
	}

	entry, err := validator.ResolveEntry(eng.catalog, eng.entry)
	if err != nil {
		return nil, err
	}
	eng.entry = entry

	if err := validator.ValidateCatalog(eng.catalog, entry); err != nil {
		return nil, fmt.Errorf("invalid scene catalog: %w", err)
	}

	return eng, nil
}

// OpenCatalog opens the default catalog for path.
func OpenCatalog(path string) (ports.SceneCatalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if info.IsDir() {
		return loamAdapter.Open(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return file.Open(path)
	}
	return nil, fmt.Errorf("unsupported catalog %q: expected a directory or a .yaml file", path)
}

// Activate builds and starts a fresh controller for the named scene.
// The controller writes to the engine's outputs and reports to its hooks.
func (e *Engine) Activate(name string, opts ...runtime.Option) (*runtime.Controller, error) {
	cfg, err := e.catalog.GetScene(name)
	if err != nil {
		return nil, err
	}

	base := []runtime.Option{
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(e.hooks),
	}
	if e.opacityOut != nil {
		base = append(base, runtime.WithOpacityOutput(e.opacityOut))
	}
	if e.volumeOut != nil {
		base = append(base, runtime.WithVolumeOutput(e.volumeOut))
	}

	ctrl, err := runtime.NewController(cfg, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	if err := ctrl.Start(); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// EntryScene returns the name of the first scene of the experience.
func (e *Engine) EntryScene() string {
	return e.entry
}

// Catalog returns the underlying SceneCatalog used by the engine.
func (e *Engine) Catalog() ports.SceneCatalog {
	return e.catalog
}

// Hooks returns the lifecycle hooks handed to every controller.
func (e *Engine) Hooks() domain.LifecycleHooks {
	return e.hooks
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Inspect returns every scene configuration, sorted by name.
func (e *Engine) Inspect() ([]domain.FlowConfig, error) {
	names, err := e.catalog.ListScenes()
	if err != nil {
		return nil, err
	}
	scenes := make([]domain.FlowConfig, 0, len(names))
	for _, name := range names {
		cfg, err := e.catalog.GetScene(name)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, cfg)
	}
	return scenes, nil
}

// Unreachable lists the scenes that no path from the entry scene leads to.
func (e *Engine) Unreachable() ([]string, error) {
	return validator.Unreachable(e.catalog, e.entry)
}

// Watch returns a channel that signals when the underlying catalog changes.
// Returns error if the catalog does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.catalog.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("catalog does not support watching")
}
