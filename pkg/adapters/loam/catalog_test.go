package loam

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/sceneflow/internal/testutils"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exhibit = map[string]string{
	"intro.md": `---
is_entry: true
dwell_seconds: 15
next: gallery
restart: intro
---
# Welcome
Put the headset on.`,
	"gallery.md": `---
dwell_seconds: 30
next: outro
restart: intro
---
Room two.`,
	"outro.md": `---
dwell_seconds: 0
restart: intro
---`,
}

func TestCatalog_Contract(t *testing.T) {
	dir := testutils.WriteScenes(t, exhibit)

	catalog, err := Open(dir)
	require.NoError(t, err)

	ports.RunSceneCatalogContract(t, catalog, map[string]domain.FlowConfig{
		"intro":   {IsEntryScene: true, DwellSeconds: 15, NextScene: "gallery", RestartScene: "intro"},
		"gallery": {DwellSeconds: 30, NextScene: "outro", RestartScene: "intro"},
		"outro":   {DwellSeconds: 0, RestartScene: "intro"},
	})
}

func TestCatalog_BodyBecomesNotes(t *testing.T) {
	dir := testutils.WriteScenes(t, exhibit)
	catalog, err := Open(dir)
	require.NoError(t, err)

	intro, err := catalog.GetScene("intro")
	require.NoError(t, err)
	assert.Equal(t, "# Welcome\nPut the headset on.", intro.Notes)
}

func TestCatalog_ListScenes_DetectsCollisions(t *testing.T) {
	dir := testutils.WriteScenes(t, map[string]string{
		"intro.md":   "---\nrestart: intro\n---\n",
		"intro.json": `{"id": "intro", "restart": "intro"}`,
	})
	catalog, err := Open(dir)
	require.NoError(t, err)

	_, err = catalog.ListScenes()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "intro")
}

func TestCatalog_MusicResolvedAgainstDir(t *testing.T) {
	dir := testutils.WriteScenes(t, map[string]string{
		"intro.md": "---\nrestart: intro\nmusic: audio/intro.wav\n---\n",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "audio"), 0755))

	catalog, err := Open(dir)
	require.NoError(t, err)

	intro, err := catalog.GetScene("intro")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audio", "intro.wav"), intro.Music)
}
