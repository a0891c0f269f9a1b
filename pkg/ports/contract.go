package ports

import (
	"testing"

	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSceneCatalogContract runs a suite of tests to verify that a SceneCatalog implementation
// adheres to the defined interface contract. want holds every scene the catalog was seeded with.
func RunSceneCatalogContract(t *testing.T, catalog SceneCatalog, want map[string]domain.FlowConfig) {
	t.Helper()

	t.Run("GetScene", func(t *testing.T) {
		for name, expected := range want {
			got, err := catalog.GetScene(name)
			require.NoError(t, err, "GetScene(%s)", name)
			assert.Equal(t, name, got.Name)
			assert.Equal(t, expected.IsEntryScene, got.IsEntryScene, "is_entry of %s", name)
			assert.InDelta(t, expected.DwellSeconds, got.DwellSeconds, 1e-9, "dwell of %s", name)
			assert.Equal(t, expected.NextScene, got.NextScene, "next of %s", name)
			assert.Equal(t, expected.RestartScene, got.RestartScene, "restart of %s", name)
		}
	})

	t.Run("GetScene NotFound", func(t *testing.T) {
		_, err := catalog.GetScene("non-existent-scene")
		assert.ErrorIs(t, err, domain.ErrSceneNotFound)
	})

	t.Run("ListScenes", func(t *testing.T) {
		names, err := catalog.ListScenes()
		require.NoError(t, err)
		assert.Len(t, names, len(want))
		for name := range want {
			assert.Contains(t, names, name)
		}
	})
}
