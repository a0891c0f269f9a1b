package sceneflow_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/sceneflow"
	"github.com/aretw0/sceneflow/internal/testutils"
	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exhibit() *memory.Catalog {
	intro := domain.NewFlowConfig("intro", "intro")
	intro.IsEntryScene = true
	intro.NextScene = "outro"

	outro := domain.NewFlowConfig("outro", "intro")
	outro.DwellSeconds = 5
	return memory.NewCatalog(intro, outro)
}

func TestNew_LoamDirectory(t *testing.T) {
	dir := testutils.WriteScenes(t, map[string]string{
		"intro.md": "---\nis_entry: true\nnext: outro\nrestart: intro\n---\nWelcome",
		"outro.md": "---\ndwell_seconds: 4\nrestart: intro\n---\nGoodbye",
	})

	engine, err := sceneflow.New(dir)
	require.NoError(t, err)

	assert.Equal(t, "intro", engine.EntryScene())
	assert.Equal(t, filepath.Base(dir), engine.Name)

	scenes, err := engine.Inspect()
	require.NoError(t, err)
	require.Len(t, scenes, 2)
	assert.Equal(t, "intro", scenes[0].Name)
	assert.Equal(t, domain.DefaultDwellSeconds, scenes[0].DwellSeconds)
	assert.Equal(t, "outro", scenes[1].Name)
	assert.Equal(t, 4.0, scenes[1].DwellSeconds)
	assert.True(t, scenes[1].IsTerminal())
}

func TestNew_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exhibit.yaml")
	content := `scenes:
  hall:
    is_entry: true
    dwell_seconds: 3
    next: room
    restart: hall
  room:
    restart: hall
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	engine, err := sceneflow.New(path)
	require.NoError(t, err)
	assert.Equal(t, "hall", engine.EntryScene())
	assert.Equal(t, "exhibit", engine.Name)
}

func TestNew_Errors(t *testing.T) {
	t.Run("no path and no catalog", func(t *testing.T) {
		_, err := sceneflow.New("")
		assert.Error(t, err)
	})

	t.Run("unsupported file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "exhibit.txt")
		require.NoError(t, os.WriteFile(path, []byte("scenes"), 0644))
		_, err := sceneflow.New(path)
		assert.Error(t, err)
	})

	t.Run("no entry scene", func(t *testing.T) {
		catalog := memory.NewCatalog(domain.NewFlowConfig("a", "a"))
		_, err := sceneflow.New("", sceneflow.WithCatalog(catalog))
		assert.ErrorIs(t, err, domain.ErrNoEntryScene)
	})

	t.Run("dangling next scene", func(t *testing.T) {
		a := domain.NewFlowConfig("a", "a")
		a.IsEntryScene = true
		a.NextScene = "missing"
		_, err := sceneflow.New("", sceneflow.WithCatalog(memory.NewCatalog(a)))
		assert.ErrorIs(t, err, domain.ErrUnresolvedScene)
	})

	t.Run("missing restart scene", func(t *testing.T) {
		a := domain.NewFlowConfig("a", "")
		a.IsEntryScene = true
		_, err := sceneflow.New("", sceneflow.WithCatalog(memory.NewCatalog(a)))
		assert.ErrorIs(t, err, domain.ErrMissingRestartScene)
	})
}

func TestWithEntryScene_OverridesFlag(t *testing.T) {
	engine, err := sceneflow.New("", sceneflow.WithCatalog(exhibit()), sceneflow.WithEntryScene("outro"))
	require.NoError(t, err)
	assert.Equal(t, "outro", engine.EntryScene())

	_, err = sceneflow.New("", sceneflow.WithCatalog(exhibit()), sceneflow.WithEntryScene("nope"))
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
}

func TestActivate_WiresOutputsAndHooks(t *testing.T) {
	out := memory.NewOutputs(0.8)

	var first, second []domain.Phase
	engine, err := sceneflow.New("",
		sceneflow.WithCatalog(exhibit()),
		sceneflow.WithOpacityOutput(out),
		sceneflow.WithVolumeOutput(out),
		sceneflow.WithLifecycleHooks(domain.LifecycleHooks{
			OnPhaseEnter: func(e *domain.PhaseEvent) { first = append(first, e.Phase) },
		}),
		sceneflow.WithLifecycleHooks(domain.LifecycleHooks{
			OnPhaseEnter: func(e *domain.PhaseEvent) { second = append(second, e.Phase) },
		}),
	)
	require.NoError(t, err)

	ctrl, err := engine.Activate("outro")
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseFadingIn, ctrl.State().Phase)
	assert.Equal(t, 1.0, out.Opacity(), "non-entry scenes start black")
	assert.Equal(t, 0.8, ctrl.Volume())
	assert.Equal(t, []domain.Phase{domain.PhaseFadingIn}, first)
	assert.Equal(t, first, second)
}

func TestActivate_UnknownScene(t *testing.T) {
	engine, err := sceneflow.New("", sceneflow.WithCatalog(exhibit()))
	require.NoError(t, err)

	_, err = engine.Activate("nowhere")
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
}

func TestWatch_Unsupported(t *testing.T) {
	engine, err := sceneflow.New("", sceneflow.WithCatalog(exhibit()))
	require.NoError(t, err)

	_, err = engine.Watch(context.Background())
	assert.Error(t, err)
}

func TestUnreachable(t *testing.T) {
	catalog := exhibit()
	orphan := domain.NewFlowConfig("storage", "intro")
	catalog.Add(orphan)

	engine, err := sceneflow.New("memory", sceneflow.WithCatalog(catalog))
	require.NoError(t, err)

	unreachable, err := engine.Unreachable()
	require.NoError(t, err)
	assert.Equal(t, []string{"storage"}, unreachable)
}
