package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/sceneflow/internal/dto"
	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"gopkg.in/yaml.v3"
)

// Catalog implements ports.SceneCatalog from a single YAML file:
//
//	scenes:
//	  intro:
//	    is_entry: true
//	    dwell_seconds: 15
//	    next: gallery
//	    restart: intro
//
// The file is read once; scenes are served from memory afterwards.
type Catalog struct {
	*memory.Catalog
	Path string
}

type document struct {
	Scenes map[string]map[string]any `yaml:"scenes"`
}

// Open reads and parses the catalog at path.
func Open(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	c, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// Parse builds a catalog from YAML bytes. Relative music paths are resolved against baseDir.
func Parse(data []byte, baseDir string) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Scenes) == 0 {
		return nil, fmt.Errorf("catalog defines no scenes")
	}

	c := &Catalog{Catalog: memory.NewCatalog()}
	for name, raw := range doc.Scenes {
		meta, err := dto.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", name, err)
		}
		if meta.ID != "" && meta.ID != name {
			return nil, fmt.Errorf("scene %q: id %q does not match its key", name, meta.ID)
		}
		c.Add(meta.ToConfig(name, baseDir))
	}
	return c, nil
}
