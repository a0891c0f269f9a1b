package domain

import (
	"fmt"
	"math"
)

const (
	// DefaultDwellSeconds is the wait between fade-in and fade-out when a scene does not set one.
	DefaultDwellSeconds = 15.0

	// FadeSeconds is the fixed length of both the fade-in and the fade-out.
	FadeSeconds = 2.0
)

// FlowConfig is the immutable configuration of a single scene activation.
type FlowConfig struct {
	// Name identifies the scene in the catalog.
	Name string `json:"name" yaml:"name"`

	// IsEntryScene skips the fade-in: the scene starts fully visible.
	IsEntryScene bool `json:"is_entry" yaml:"is_entry"`

	// DwellSeconds is how long the scene waits before fading out.
	DwellSeconds float64 `json:"dwell_seconds" yaml:"dwell_seconds"`

	// NextScene is loaded after the fade-out. Empty means the experience ends here.
	NextScene string `json:"next,omitempty" yaml:"next,omitempty"`

	// RestartScene is loaded whenever reset is pressed. Required.
	RestartScene string `json:"restart" yaml:"restart"`

	// Music is an optional audio file played while the scene is active.
	Music string `json:"music,omitempty" yaml:"music,omitempty"`

	// Notes is free-form markdown shown by presentation surfaces.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewFlowConfig returns a config with the default dwell time.
func NewFlowConfig(name, restartScene string) FlowConfig {
	return FlowConfig{
		Name:         name,
		DwellSeconds: DefaultDwellSeconds,
		RestartScene: restartScene,
	}
}

// IsTerminal reports whether the scene halts after its fade-out instead of loading another scene.
func (c FlowConfig) IsTerminal() bool {
	return c.NextScene == ""
}

// Validate checks the construction-time contract of the config.
// Scene name resolution needs a catalog and is done by the validator.
func (c FlowConfig) Validate() error {
	if c.RestartScene == "" {
		return fmt.Errorf("scene %q: %w", c.Name, ErrMissingRestartScene)
	}
	if math.IsNaN(c.DwellSeconds) || math.IsInf(c.DwellSeconds, 0) {
		return fmt.Errorf("scene %q: %w: %v", c.Name, ErrInvalidDwell, c.DwellSeconds)
	}
	if c.DwellSeconds < 0 {
		return fmt.Errorf("scene %q: %w: %v", c.Name, ErrNegativeDwell, c.DwellSeconds)
	}
	return nil
}
