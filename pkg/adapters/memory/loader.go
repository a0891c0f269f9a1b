package memory

import (
	"context"
	"sync"
)

// Loader implements ports.SceneLoader by recording every request.
type Loader struct {
	mu    sync.Mutex
	loads []string

	// Err is returned by Load when set.
	Err error
}

// NewLoader creates an empty recording loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load records the request.
func (l *Loader) Load(_ context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads = append(l.loads, name)
	return l.Err
}

// Loads returns the names requested so far.
func (l *Loader) Loads() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.loads...)
}
