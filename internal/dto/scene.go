package dto

import (
	"fmt"
	"path/filepath"

	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// SceneMetadata represents the header/metadata of a scene document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type SceneMetadata struct {
	ID      string `json:"id" mapstructure:"id"`
	IsEntry bool   `json:"is_entry" mapstructure:"is_entry"`

	// DwellSeconds is a pointer so an absent key falls back to the default
	// while an explicit 0 is kept.
	DwellSeconds *float64 `json:"dwell_seconds" mapstructure:"dwell_seconds"`

	Next    string `json:"next" mapstructure:"next"`
	Restart string `json:"restart" mapstructure:"restart"`
	Music   string `json:"music" mapstructure:"music"`
	Notes   string `json:"notes" mapstructure:"notes"`
}

// Decode converts a raw YAML/JSON map into SceneMetadata.
// Numbers given as strings are accepted; unknown keys are rejected.
func Decode(raw map[string]any) (SceneMetadata, error) {
	var meta SceneMetadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &meta,
	})
	if err != nil {
		return meta, err
	}
	if err := decoder.Decode(raw); err != nil {
		return meta, fmt.Errorf("invalid scene metadata: %w", err)
	}
	return meta, nil
}

// ToConfig builds the FlowConfig of the scene. name is used when the metadata
// carries no id; a relative music path is resolved against baseDir.
func (m SceneMetadata) ToConfig(name, baseDir string) domain.FlowConfig {
	if m.ID != "" {
		name = m.ID
	}

	cfg := domain.NewFlowConfig(name, m.Restart)
	cfg.IsEntryScene = m.IsEntry
	cfg.NextScene = m.Next
	cfg.Notes = m.Notes
	if m.DwellSeconds != nil {
		cfg.DwellSeconds = *m.DwellSeconds
	}
	if m.Music != "" {
		cfg.Music = m.Music
		if baseDir != "" && !filepath.IsAbs(m.Music) {
			cfg.Music = filepath.Join(baseDir, m.Music)
		}
	}
	return cfg
}
