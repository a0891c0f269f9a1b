package terminal

import (
	"testing"

	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.Presenter   = (*Screen)(nil)
	_ ports.InputSource = (*Screen)(nil)
)

func newSimScreen(t *testing.T, opts ...Option) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(80, 12)
	t.Cleanup(sim.Fini)
	return New(sim, opts...)
}

func TestHandleKey_Buttons(t *testing.T) {
	s := newSimScreen(t)

	assert.True(t, s.handleKey(tcell.KeyRune, ' '))
	assert.True(t, s.IsSkipPressed())
	assert.False(t, s.IsSkipPressed(), "press is latched once")

	s.handleKey(tcell.KeyEnter, 0)
	assert.True(t, s.IsSkipPressed())

	s.handleKey(tcell.KeyRune, 'r')
	assert.True(t, s.IsResetPressed())

	s.handleKey(tcell.KeyBackspace2, 0)
	assert.True(t, s.IsResetPressed())

	assert.True(t, s.handleKey(tcell.KeyRune, 'x'))
	assert.False(t, s.IsSkipPressed())
	assert.False(t, s.IsResetPressed())
}

func TestHandleKey_Quit(t *testing.T) {
	s := newSimScreen(t)

	assert.False(t, s.handleKey(tcell.KeyEscape, 0))
	assert.False(t, s.handleKey(tcell.KeyRune, 'q'), "second quit does not panic")

	select {
	case <-s.Quit():
	default:
		t.Fatal("quit channel not closed")
	}
}

func TestShade(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(255, 255, 255), Shade(0))
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), Shade(1))
	assert.Equal(t, tcell.NewRGBColor(128, 128, 128), Shade(0.5))
	assert.Equal(t, Shade(1), Shade(7), "opacity is clamped")
}

func TestCompose(t *testing.T) {
	snap := domain.Snapshot{
		Scene:      "gallery",
		Activation: 3,
		State:      domain.FlowState{Phase: domain.PhaseWaiting, Elapsed: 4.25},
		Opacity:    0,
		Volume:     0.8,
	}

	f := compose(snap, "# Room two\n\nLook up.\nA\nB\nC", 80)
	assert.Equal(t, "GALLERY", f.title)
	assert.Equal(t, []string{"Room two", "Look up.", "A"}, f.notes)
	assert.Contains(t, f.status, "gallery #3")
	assert.Contains(t, f.status, "waiting")
	assert.Contains(t, f.status, "volume 0.80")
	assert.Equal(t, Shade(0), f.fg)

	narrow := compose(snap, "", 10)
	assert.Len(t, []rune(narrow.status), 10)
	assert.Empty(t, narrow.notes)
}

func TestPresent_LooksUpNotesOnce(t *testing.T) {
	cfg := domain.NewFlowConfig("intro", "intro")
	cfg.Notes = "Welcome"
	s := newSimScreen(t, WithCatalog(memory.NewCatalog(cfg)))

	s.Present(domain.Snapshot{Scene: "intro", Opacity: 0.3})
	s.Present(domain.Snapshot{Scene: "missing"})

	assert.Equal(t, map[string]string{"intro": "Welcome", "missing": ""}, s.notes)
}

func TestSetCatalog_DropsCachedNotes(t *testing.T) {
	old := domain.NewFlowConfig("intro", "intro")
	old.Notes = "Welcome"
	s := newSimScreen(t, WithCatalog(memory.NewCatalog(old)))
	s.Present(domain.Snapshot{Scene: "intro"})

	updated := old
	updated.Notes = "Bienvenue"
	s.SetCatalog(memory.NewCatalog(updated))
	s.Present(domain.Snapshot{Scene: "intro"})

	assert.Equal(t, "Bienvenue", s.notes["intro"])
}
