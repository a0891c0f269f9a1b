package dsl

import (
	"testing"

	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_LinearExhibit(t *testing.T) {
	b := New().Restart("intro")
	b.Scene("intro").Entry().Dwell(5).Notes("Welcome")
	b.Scene("gallery").Music("gallery.wav")
	b.Scene("outro").Restart("gallery")
	b.Chain("intro", "gallery", "outro")

	catalog, err := b.Build()
	require.NoError(t, err)

	names, err := catalog.ListScenes()
	require.NoError(t, err)
	assert.Equal(t, []string{"gallery", "intro", "outro"}, names)

	intro, err := catalog.GetScene("intro")
	require.NoError(t, err)
	assert.True(t, intro.IsEntryScene)
	assert.Equal(t, 5.0, intro.DwellSeconds)
	assert.Equal(t, "gallery", intro.NextScene)
	assert.Equal(t, "intro", intro.RestartScene)
	assert.Equal(t, "Welcome", intro.Notes)

	gallery, err := catalog.GetScene("gallery")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDwellSeconds, gallery.DwellSeconds)
	assert.Equal(t, "gallery.wav", gallery.Music)

	outro, err := catalog.GetScene("outro")
	require.NoError(t, err)
	assert.True(t, outro.IsTerminal())
	assert.Equal(t, "gallery", outro.RestartScene, "scene restart wins over the default")
}

func TestBuilder_SceneIsReused(t *testing.T) {
	b := New()
	first := b.Scene("intro")
	assert.Same(t, first, b.Scene("intro"))
}

func TestBuilder_ReportsAllProblems(t *testing.T) {
	b := New()
	b.Scene("intro").Next("missing").Restart("intro")
	b.Scene("lost").Dwell(-1)

	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnresolvedScene)
	assert.ErrorIs(t, err, domain.ErrMissingRestartScene)
}

func TestBuilder_SatisfiesCatalogContract(t *testing.T) {
	b := New().Restart("a")
	b.Chain("a", "b")
	b.Scene("a").Entry()

	catalog, err := b.Build()
	require.NoError(t, err)
	ports.RunSceneCatalogContract(t, catalog, map[string]domain.FlowConfig{
		"a": {Name: "a", IsEntryScene: true, DwellSeconds: domain.DefaultDwellSeconds, NextScene: "b", RestartScene: "a"},
		"b": {Name: "b", DwellSeconds: domain.DefaultDwellSeconds, RestartScene: "a"},
	})
}
