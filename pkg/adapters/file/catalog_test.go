package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/sceneflow/pkg/adapters/file"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exhibit = `
scenes:
  intro:
    is_entry: true
    next: gallery
    restart: intro
    music: audio/intro.wav
    notes: |
      # Welcome
      Put the headset on.
  gallery:
    dwell_seconds: 30
    next: outro
    restart: intro
  outro:
    dwell_seconds: 0
    restart: intro
`

func TestCatalog_Contract(t *testing.T) {
	c, err := file.Parse([]byte(exhibit), "")
	require.NoError(t, err)

	ports.RunSceneCatalogContract(t, c, map[string]domain.FlowConfig{
		"intro":   {IsEntryScene: true, DwellSeconds: domain.DefaultDwellSeconds, NextScene: "gallery", RestartScene: "intro"},
		"gallery": {DwellSeconds: 30, NextScene: "outro", RestartScene: "intro"},
		"outro":   {DwellSeconds: 0, RestartScene: "intro"},
	})
}

func TestOpen_ResolvesMusicAgainstFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(exhibit), 0644))

	c, err := file.Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Path)

	intro, err := c.GetScene("intro")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audio/intro.wav"), intro.Music)
	assert.Contains(t, intro.Notes, "Put the headset on.")
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":       "scenes: {}",
		"not yaml":    "scenes: [",
		"unknown key": "scenes:\n  a:\n    restart: a\n    dwel: 3\n",
		"bad number":  "scenes:\n  a:\n    restart: a\n    dwell_seconds: soon\n",
		"id mismatch": "scenes:\n  a:\n    id: b\n    restart: a\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := file.Parse([]byte(doc), "")
			assert.Error(t, err)
		})
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := file.Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
