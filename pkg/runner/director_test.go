package runner

import (
	"context"
	"testing"

	"github.com/aretw0/sceneflow"
	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.SceneLoader = (*Director)(nil)

func loopEngine(t *testing.T) *sceneflow.Engine {
	t.Helper()
	a := domain.NewFlowConfig("a", "a")
	a.IsEntryScene = true
	a.NextScene = "b"
	b := domain.NewFlowConfig("b", "a")
	b.NextScene = "a"

	engine, err := sceneflow.New("", sceneflow.WithCatalog(memory.NewCatalog(a, b)))
	require.NoError(t, err)
	return engine
}

func TestDirector_ActivationsAreFresh(t *testing.T) {
	d := NewDirector(loopEngine(t))
	assert.Nil(t, d.Controller())
	assert.Equal(t, domain.Snapshot{}, d.Record())

	ctx := context.Background()
	require.NoError(t, d.Start(ctx))
	first := d.Controller()
	first.Tick(1, domain.InputSample{})

	require.NoError(t, d.Load(ctx, "b"))
	require.NoError(t, d.Load(ctx, "a"))

	second := d.Controller()
	assert.NotSame(t, first, second)
	assert.Equal(t, 0.0, second.State().Elapsed, "a new activation carries no state")
	assert.Equal(t, 3, d.Snapshot().Activation)
	assert.Equal(t, []string{"a", "b", "a"}, d.History())
}

func TestDirector_HistoryIsBounded(t *testing.T) {
	d := NewDirector(loopEngine(t), WithHistorySize(2))
	ctx := context.Background()

	require.NoError(t, d.Start(ctx))
	require.NoError(t, d.Load(ctx, "b"))
	require.NoError(t, d.Reset(ctx, "a"))

	assert.Equal(t, []string{"b", "a"}, d.History())
}

func TestDirector_UnknownSceneKeepsController(t *testing.T) {
	d := NewDirector(loopEngine(t))
	ctx := context.Background()
	require.NoError(t, d.Start(ctx))
	before := d.Controller()

	err := d.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
	assert.Same(t, before, d.Controller())
	assert.Equal(t, 1, d.Snapshot().Activation)
}

func TestDirector_CancelledContext(t *testing.T) {
	d := NewDirector(loopEngine(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, d.Start(ctx), context.Canceled)
	assert.Nil(t, d.Controller())
}
