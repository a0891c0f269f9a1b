package dsl

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"github.com/aretw0/sceneflow/pkg/domain"
)

// Builder manages the catalog construction.
type Builder struct {
	scenes  map[string]*SceneBuilder
	restart string
}

// New creates a new catalog builder.
func New() *Builder {
	return &Builder{
		scenes: make(map[string]*SceneBuilder),
	}
}

// Restart sets the restart scene of every scene that does not set its own.
func (b *Builder) Restart(name string) *Builder {
	b.restart = name
	return b
}

// Scene creates a scene with the default dwell time.
// If the scene already exists, it returns the existing builder.
func (b *Builder) Scene(name string) *SceneBuilder {
	if sb, ok := b.scenes[name]; ok {
		return sb
	}
	sb := &SceneBuilder{
		cfg: domain.FlowConfig{
			Name:         name,
			DwellSeconds: domain.DefaultDwellSeconds,
		},
	}
	b.scenes[name] = sb
	return sb
}

// Chain links the scenes in order: each one hands over to the next, the last
// one ends the experience. Missing scenes are created.
func (b *Builder) Chain(names ...string) *Builder {
	for i, name := range names {
		sb := b.Scene(name)
		if i+1 < len(names) {
			sb.Next(names[i+1])
		} else {
			sb.Terminal()
		}
	}
	return b
}

// Build compiles the catalog. Every scene config is validated and every
// next/restart link must name a scene of the catalog.
func (b *Builder) Build() (*memory.Catalog, error) {
	names := make([]string, 0, len(b.scenes))
	for name := range b.scenes {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	configs := make([]domain.FlowConfig, 0, len(names))
	for _, name := range names {
		cfg := b.scenes[name].cfg
		if cfg.RestartScene == "" {
			cfg.RestartScene = b.restart
		}
		if err := cfg.Validate(); err != nil {
			errs = append(errs, err)
		}
		for _, target := range []string{cfg.NextScene, cfg.RestartScene} {
			if _, ok := b.scenes[target]; target != "" && !ok {
				errs = append(errs, fmt.Errorf("scene %q -> %q: %w", name, target, domain.ErrUnresolvedScene))
			}
		}
		configs = append(configs, cfg)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to build catalog: %w", errors.Join(errs...))
	}

	return memory.NewCatalog(configs...), nil
}
