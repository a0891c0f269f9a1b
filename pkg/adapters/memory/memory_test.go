package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestCatalog_Contract(t *testing.T) {
	intro := domain.FlowConfig{Name: "intro", IsEntryScene: true, DwellSeconds: 15, NextScene: "gallery", RestartScene: "intro"}
	gallery := domain.FlowConfig{Name: "gallery", DwellSeconds: 30, RestartScene: "intro"}

	catalog := memory.NewCatalog(intro, gallery)
	ports.RunSceneCatalogContract(t, catalog, map[string]domain.FlowConfig{
		"intro":   intro,
		"gallery": gallery,
	})
}

func TestInput_PressIsConsumedOnPoll(t *testing.T) {
	in := memory.NewInput()
	assert.False(t, in.IsSkipPressed())

	in.Press(domain.ButtonSkip)
	assert.False(t, in.IsResetPressed(), "buttons are independent")
	assert.True(t, in.IsSkipPressed())
	assert.False(t, in.IsSkipPressed(), "a press is seen once")
}

func TestInput_HoldIsLevel(t *testing.T) {
	in := memory.NewInput()
	in.Hold(domain.ButtonReset, true)
	assert.True(t, in.IsResetPressed())
	assert.True(t, in.IsResetPressed())

	in.Hold(domain.ButtonReset, false)
	assert.False(t, in.IsResetPressed())
}

func TestOutputs_Record(t *testing.T) {
	out := memory.NewOutputs(0.7)
	assert.Equal(t, 0.7, out.Volume())

	out.SetOpacity(1)
	out.SetVolume(0.2)
	out.SetVolume(0.1)

	op, vol := out.Writes()
	assert.Equal(t, 1, op)
	assert.Equal(t, 2, vol)
	assert.Equal(t, 0.1, out.Volume())
}

func TestLoader_Records(t *testing.T) {
	l := memory.NewLoader()
	assert.NoError(t, l.Load(context.Background(), "intro"))
	assert.Equal(t, []string{"intro"}, l.Loads())
}
