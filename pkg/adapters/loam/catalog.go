package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/sceneflow/internal/dto"
	"github.com/aretw0/sceneflow/pkg/domain"
)

// Catalog adapts a Loam repository of scene documents to ports.SceneCatalog.
//
// Each scene is one document (e.g. intro.md) whose frontmatter holds the flow
// settings and whose body becomes the scene notes.
type Catalog struct {
	Repo *loam.TypedRepository[dto.SceneMetadata]
	dir  string
}

// New creates a catalog over an existing typed repository.
// dir is used to resolve relative music paths and may be empty.
func New(repo *loam.TypedRepository[dto.SceneMetadata], dir string) *Catalog {
	return &Catalog{
		Repo: repo,
		dir:  dir,
	}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Catalog, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// The catalog never writes scenes; read-only avoids Loam's sandbox behavior in dev mode.
	repo, err := loam.Init(absPath, loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[dto.SceneMetadata](repo), absPath), nil
}

// GetScene loads a scene document by name.
func (c *Catalog) GetScene(name string) (domain.FlowConfig, error) {
	ctx := context.Background()

	doc, err := c.Repo.Get(ctx, name)
	if err != nil {
		return domain.FlowConfig{}, fmt.Errorf("%w: %s: %v", domain.ErrSceneNotFound, name, err)
	}

	cfg := doc.Data.ToConfig(trimExtension(doc.ID), c.dir)
	if cfg.Notes == "" {
		cfg.Notes = strings.TrimSpace(doc.Content)
	}
	return cfg, nil
}

// ListScenes lists all scenes in the repository.
func (c *Catalog) ListScenes() ([]string, error) {
	ctx := context.Background()
	docs, err := c.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))

	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		name := trimExtension(rawID)

		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: scene '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Watch returns a channel that receives the ID of every changed scene document.
func (c *Catalog) Watch(ctx context.Context) (<-chan string, error) {
	events, err := c.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
