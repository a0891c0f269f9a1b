package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/sceneflow/pkg/domain"
)

// Catalog implements ports.SceneCatalog using an in-memory map.
// Safe for concurrent use.
type Catalog struct {
	scenes map[string]domain.FlowConfig
	mu     sync.RWMutex
}

// NewCatalog creates a catalog seeded with the given scenes.
func NewCatalog(scenes ...domain.FlowConfig) *Catalog {
	c := &Catalog{scenes: make(map[string]domain.FlowConfig, len(scenes))}
	for _, s := range scenes {
		c.scenes[s.Name] = s
	}
	return c
}

// Add inserts or replaces a scene.
func (c *Catalog) Add(cfg domain.FlowConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scenes[cfg.Name] = cfg
}

// GetScene returns the configuration of a scene.
func (c *Catalog) GetScene(name string) (domain.FlowConfig, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cfg, ok := c.scenes[name]
	if !ok {
		return domain.FlowConfig{}, fmt.Errorf("%w: %s", domain.ErrSceneNotFound, name)
	}
	return cfg, nil
}

// ListScenes returns all scene names, sorted.
func (c *Catalog) ListScenes() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.scenes))
	for name := range c.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
