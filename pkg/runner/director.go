package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/sceneflow"
	"github.com/aretw0/sceneflow/internal/runtime"
	"github.com/aretw0/sceneflow/pkg/domain"
)

// Activation reasons reported on SceneEvent.Reason.
const (
	ReasonEntry = "entry"
	ReasonNext  = "next"
	ReasonReset = "reset"
)

// DefaultHistorySize bounds the visit history kept by the Director.
const DefaultHistorySize = 64

// Director implements ports.SceneLoader on top of the Engine.
//
// Loading a scene discards the current controller and starts a fresh one, so a
// scene never carries state across activations. The active controller is only
// touched from the driving loop; Snapshot and History are safe for concurrent use.
type Director struct {
	engine *sceneflow.Engine
	logger *slog.Logger
	now    func() time.Time

	ctrl       *runtime.Controller
	activation int

	mu          sync.RWMutex
	snapshot    domain.Snapshot
	history     []string
	historySize int
}

// DirectorOption configures a Director.
type DirectorOption func(*Director)

// WithDirectorLogger sets the logger used for load decisions.
func WithDirectorLogger(logger *slog.Logger) DirectorOption {
	return func(d *Director) {
		d.logger = logger
	}
}

// WithHistorySize overrides DefaultHistorySize.
func WithHistorySize(n int) DirectorOption {
	return func(d *Director) {
		d.historySize = n
	}
}

// NewDirector creates a Director with no active scene. Call Start to enter the entry scene.
func NewDirector(engine *sceneflow.Engine, opts ...DirectorOption) *Director {
	d := &Director{
		engine:      engine,
		now:         time.Now,
		historySize: DefaultHistorySize,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

// Start activates the entry scene.
func (d *Director) Start(ctx context.Context) error {
	return d.activate(ctx, d.engine.EntryScene(), ReasonEntry)
}

// Load activates the next scene. It implements ports.SceneLoader.
func (d *Director) Load(ctx context.Context, name string) error {
	return d.activate(ctx, name, ReasonNext)
}

// Reset activates the restart scene of a reset request.
func (d *Director) Reset(ctx context.Context, name string) error {
	return d.activate(ctx, name, ReasonReset)
}

func (d *Director) activate(ctx context.Context, name, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n := d.activation + 1
	ctrl, err := d.engine.Activate(name, runtime.WithActivation(n))
	if err != nil {
		return fmt.Errorf("failed to load scene %s: %w", name, err)
	}
	d.activation = n
	d.ctrl = ctrl

	d.logger.Info("scene loaded", "scene", name, "reason", reason, "activation", n)

	if hook := d.engine.Hooks().OnSceneEnter; hook != nil {
		hook(&domain.SceneEvent{
			EventBase:  domain.EventBase{Timestamp: d.now(), Type: domain.EventSceneEnter, Scene: name},
			Config:     ctrl.Config(),
			Activation: n,
			Reason:     reason,
		})
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshot = ctrl.Snapshot()
	d.history = append(d.history, name)
	if over := len(d.history) - d.historySize; d.historySize > 0 && over > 0 {
		d.history = append([]string(nil), d.history[over:]...)
	}
	return nil
}

// Controller returns the active controller, or nil before Start.
// It must only be used from the driving loop.
func (d *Director) Controller() *runtime.Controller {
	return d.ctrl
}

// Engine returns the engine the Director activates scenes from.
func (d *Director) Engine() *sceneflow.Engine {
	return d.engine
}

// Record publishes the active controller's state to concurrent readers.
func (d *Director) Record() domain.Snapshot {
	if d.ctrl == nil {
		return domain.Snapshot{}
	}
	snap := d.ctrl.Snapshot()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshot = snap
	return snap
}

// Snapshot returns the state recorded at the end of the last tick.
func (d *Director) Snapshot() domain.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// History returns the names of the last activated scenes, oldest first.
func (d *Director) History() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.history...)
}
