// Package terminal is a tcell kiosk surface: it draws the running scene faded
// by the overlay opacity and turns key presses into the skip and reset buttons.
package terminal

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
	"github.com/gdamore/tcell/v2"
)

// Screen implements ports.Presenter and ports.InputSource on a tcell screen.
//
// Space, Enter and 'n' press Skip; 'r' and Backspace press Reset; Esc, Ctrl-C
// and 'q' request quit. Presses are latched until the next tick polls them.
type Screen struct {
	*memory.Input

	screen  tcell.Screen
	catalog ports.SceneCatalog

	mu    sync.Mutex
	notes map[string]string

	quit     chan struct{}
	quitOnce sync.Once
}

// Option configures a Screen.
type Option func(*Screen)

// WithCatalog lets the screen show the notes of the running scene.
func WithCatalog(c ports.SceneCatalog) Option {
	return func(s *Screen) {
		s.catalog = c
	}
}

// New wraps an initialized tcell screen.
func New(screen tcell.Screen, opts ...Option) *Screen {
	s := &Screen{
		Input:  memory.NewInput(),
		screen: screen,
		notes:  make(map[string]string),
		quit:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates and initializes the terminal screen.
func Open(opts ...Option) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	return New(screen, opts...), nil
}

// SetCatalog swaps the notes source, e.g. after the scene files changed.
func (s *Screen) SetCatalog(c ports.SceneCatalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
	s.notes = make(map[string]string)
}

// Quit is closed when the visitor or operator asks to leave the kiosk.
func (s *Screen) Quit() <-chan struct{} {
	return s.quit
}

// Close restores the terminal. Listen returns afterwards.
func (s *Screen) Close() {
	s.screen.Fini()
}

// Listen polls terminal events until the screen is closed. It blocks.
func (s *Screen) Listen() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		s.HandleEvent(ev)
	}
}

// HandleEvent applies a single terminal event. It returns false once quit was requested.
func (s *Screen) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

func (s *Screen) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.requestQuit()
		return false
	case tcell.KeyEnter:
		s.Press(domain.ButtonSkip)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.Press(domain.ButtonReset)
	case tcell.KeyRune:
		switch r {
		case ' ', 'n', 'N':
			s.Press(domain.ButtonSkip)
		case 'r', 'R':
			s.Press(domain.ButtonReset)
		case 'q', 'Q':
			s.requestQuit()
			return false
		}
	}
	return true
}

func (s *Screen) requestQuit() {
	s.quitOnce.Do(func() { close(s.quit) })
}

// Present draws the snapshot. It implements ports.Presenter.
func (s *Screen) Present(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.screen.Size()
	f := compose(snap, s.sceneNotes(snap.Scene), w)

	background := tcell.StyleDefault.Background(tcell.ColorBlack)
	s.screen.SetStyle(background)
	s.screen.Clear()

	content := background.Foreground(f.fg)
	mid := h / 2
	drawCentered(s.screen, mid-1, w, f.title, content.Bold(true))
	for i, line := range f.notes {
		drawCentered(s.screen, mid+1+i, w, line, content)
	}
	drawText(s.screen, 0, h-1, f.status, background.Foreground(tcell.ColorGray))

	s.screen.Show()
}

func (s *Screen) sceneNotes(name string) string {
	if s.catalog == nil || name == "" {
		return ""
	}
	if notes, ok := s.notes[name]; ok {
		return notes
	}
	notes := ""
	if cfg, err := s.catalog.GetScene(name); err == nil {
		notes = cfg.Notes
	}
	s.notes[name] = notes
	return notes
}

// frame is what Present draws, computed independently from the screen.
type frame struct {
	title  string
	notes  []string
	status string
	fg     tcell.Color
}

const maxNoteLines = 3

func compose(snap domain.Snapshot, notes string, width int) frame {
	f := frame{
		title: strings.ToUpper(snap.Scene),
		fg:    Shade(snap.Opacity),
	}

	for _, line := range strings.Split(strings.TrimSpace(notes), "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if line == "" {
			continue
		}
		if len(f.notes) == maxNoteLines {
			break
		}
		f.notes = append(f.notes, truncate(line, width-2))
	}

	f.status = truncate(fmt.Sprintf(" %s #%d  %-10s %5.1fs  opacity %.2f  volume %.2f  [space] skip  [r] reset  [esc] quit",
		snap.Scene, snap.Activation, snap.State.Phase, snap.State.Elapsed, snap.Opacity, snap.Volume), width)
	return f
}

// Shade is the text color under the fade overlay: white when clear, black when opaque.
func Shade(opacity float64) tcell.Color {
	v := int32(math.Round(255 * (1 - domain.Clamp01(opacity))))
	return tcell.NewRGBColor(v, v, v)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}

func drawCentered(screen tcell.Screen, y, width int, text string, style tcell.Style) {
	x := (width - len([]rune(text))) / 2
	if x < 0 {
		x = 0
	}
	drawText(screen, x, y, text, style)
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
