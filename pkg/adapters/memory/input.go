package memory

import (
	"sync"

	"github.com/aretw0/sceneflow/pkg/domain"
)

// Input implements ports.InputSource for event-driven surfaces (keyboard, HTTP, MQTT).
//
// A Press is latched until the next poll of that button, so a press that lands
// between two ticks is seen exactly once. Hold sets a level that stays pressed
// until released. Safe for concurrent use.
type Input struct {
	mu      sync.Mutex
	latched map[domain.Button]bool
	held    map[domain.Button]bool
}

// NewInput creates an input with nothing pressed.
func NewInput() *Input {
	return &Input{
		latched: make(map[domain.Button]bool),
		held:    make(map[domain.Button]bool),
	}
}

// Press latches a single press of b.
func (i *Input) Press(b domain.Button) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.latched[b] = true
}

// Hold sets or releases a level press of b.
func (i *Input) Hold(b domain.Button, down bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.held[b] = down
}

func (i *Input) IsSkipPressed() bool  { return i.poll(domain.ButtonSkip) }
func (i *Input) IsResetPressed() bool { return i.poll(domain.ButtonReset) }

func (i *Input) poll(b domain.Button) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	pressed := i.latched[b] || i.held[b]
	i.latched[b] = false
	return pressed
}
