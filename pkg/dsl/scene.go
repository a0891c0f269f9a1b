package dsl

import "github.com/aretw0/sceneflow/pkg/domain"

// SceneBuilder provides a fluent API for configuring a scene.
type SceneBuilder struct {
	cfg domain.FlowConfig
}

// Entry marks the scene as the start of the experience: it skips the fade-in.
func (s *SceneBuilder) Entry() *SceneBuilder {
	s.cfg.IsEntryScene = true
	return s
}

// Dwell sets how long the scene waits between its fades, in seconds.
func (s *SceneBuilder) Dwell(seconds float64) *SceneBuilder {
	s.cfg.DwellSeconds = seconds
	return s
}

// Next sets the scene loaded after the fade-out.
func (s *SceneBuilder) Next(name string) *SceneBuilder {
	s.cfg.NextScene = name
	return s
}

// Terminal makes the scene end the experience after its fade-out.
func (s *SceneBuilder) Terminal() *SceneBuilder {
	s.cfg.NextScene = ""
	return s
}

// Restart sets the scene loaded when reset is pressed, overriding the builder default.
func (s *SceneBuilder) Restart(name string) *SceneBuilder {
	s.cfg.RestartScene = name
	return s
}

func (s *SceneBuilder) Music(path string) *SceneBuilder {
	s.cfg.Music = path
	return s
}

func (s *SceneBuilder) Notes(markdown string) *SceneBuilder {
	s.cfg.Notes = markdown
	return s
}

// Build returns the configuration as set so far, without the builder default restart.
func (s *SceneBuilder) Build() domain.FlowConfig {
	return s.cfg
}
