package ports

import (
	"context"

	"github.com/aretw0/sceneflow/pkg/domain"
)

// SceneLoader switches the installation to another scene.
// Once Load is called the requesting controller performs no further work;
// failures are the loader's concern.
type SceneLoader interface {
	Load(ctx context.Context, name string) error
}

// SceneCatalog resolves scene names to their configuration.
// This allows the scene source (YAML file, Loam directory, memory) to be decoupled.
type SceneCatalog interface {
	// GetScene returns domain.ErrSceneNotFound (wrapped) for unknown names.
	GetScene(name string) (domain.FlowConfig, error)

	// ListScenes returns the names of every scene in the catalog.
	ListScenes() ([]string, error)
}

// Watchable is implemented by catalogs that can report changes to their scenes.
type Watchable interface {
	Watch(ctx context.Context) (<-chan string, error)
}
