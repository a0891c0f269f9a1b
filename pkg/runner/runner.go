package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
)

// DefaultTickRate is the frame rate of Run, in ticks per second.
const DefaultTickRate = 60

// DefaultPublishInterval is how often the status is published while the phase is unchanged.
const DefaultPublishInterval = time.Second

// Runner handles the frame loop of a sceneflow installation.
//
// Each Step samples the input once, ticks the active controller and acts on
// the outcome. A Runner is driven by a single goroutine.
type Runner struct {
	director *Director

	// Input is polled once per tick. If nil, no button is ever pressed.
	Input ports.InputSource

	// Presenter receives the snapshot of every tick. Optional.
	Presenter ports.Presenter

	// Publisher receives the snapshot on every phase change and at PublishInterval.
	Publisher       ports.StatusPublisher
	PublishInterval time.Duration

	// TickRate is the frame rate used by Run.
	TickRate float64

	// Quit stops Run when closed, like a cancelled context.
	Quit <-chan struct{}

	// Logger is used for load decisions and failures.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	now          func() time.Time
	lastPublish  time.Time
	lastSnapshot domain.Snapshot
}

// New creates a Runner for the given Director.
func New(director *Director, opts ...Option) *Runner {
	r := &Runner{
		director:        director,
		TickRate:        DefaultTickRate,
		PublishInterval: DefaultPublishInterval,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.Input == nil {
		r.Input = ports.InputFuncs{}
	}
	return r
}

// Director returns the Director driven by the runner.
func (r *Runner) Director() *Director {
	return r.director
}

// Step advances the installation by dt seconds.
//
// The buttons are sampled exactly once. A failed load is reported and not
// retried; the scene that requested it stays in its final phase and only
// answers reset.
func (r *Runner) Step(ctx context.Context, dt float64) error {
	if r.director.Controller() == nil {
		if err := r.director.Start(ctx); err != nil {
			return err
		}
	}
	ctrl := r.director.Controller()

	in := domain.InputSample{
		Reset: r.Input.IsResetPressed(),
		Skip:  r.Input.IsSkipPressed(),
	}

	var out domain.Outcome
	if ctrl.State().Phase.IsFinal() && ctrl.CheckResetAlways(in) {
		// The scene ceded control but its load failed: reset must still work.
		out = domain.Outcome{Kind: domain.OutcomeReset, Scene: ctrl.Config().RestartScene}
	} else {
		out = ctrl.Tick(dt, in)
	}

	var loadErr error
	switch out.Kind {
	case domain.OutcomeLoad:
		loadErr = r.director.Load(ctx, out.Scene)
	case domain.OutcomeReset:
		loadErr = r.director.Reset(ctx, out.Scene)
	case domain.OutcomeEnded:
		r.Logger.Info("experience ended", "scene", ctrl.Config().Name)
	}
	if loadErr != nil {
		r.Logger.Error("scene load failed", "from", ctrl.Config().Name, "err", loadErr)
	}

	snap := r.director.Record()
	if r.Presenter != nil {
		r.Presenter.Present(snap)
	}
	r.publish(ctx, snap)

	if loadErr != nil {
		return fmt.Errorf("%s: %w", out.Kind, loadErr)
	}
	return nil
}

func (r *Runner) publish(ctx context.Context, snap domain.Snapshot) {
	if r.Publisher == nil {
		return
	}

	changed := snap.Activation != r.lastSnapshot.Activation || snap.State.Phase != r.lastSnapshot.State.Phase
	now := r.now()
	if !changed && now.Sub(r.lastPublish) < r.PublishInterval {
		return
	}

	if err := r.Publisher.Publish(ctx, snap); err != nil {
		r.Logger.Warn("status publish failed", "err", err)
		return
	}
	r.lastPublish = now
	r.lastSnapshot = snap
}

// Run drives Step at TickRate until ctx is cancelled or Quit is closed.
// Ticks use the measured time between frames, so a slow frame advances the
// flow by the time that actually passed.
func (r *Runner) Run(ctx context.Context) error {
	rate := r.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / rate))
	defer ticker.Stop()

	if r.director.Controller() == nil {
		if err := r.director.Start(ctx); err != nil {
			return err
		}
		r.Record()
	}

	last := r.now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.Quit:
			r.Logger.Debug("quit requested")
			return nil
		case <-ticker.C:
			now := r.now()
			dt := now.Sub(last).Seconds()
			last = now

			// Load failures are already logged; the loop keeps serving reset.
			_ = r.Step(ctx, dt)
		}
	}
}

// Record presents and publishes the current state without ticking.
func (r *Runner) Record() {
	snap := r.director.Record()
	if r.Presenter != nil {
		r.Presenter.Present(snap)
	}
	r.publish(context.Background(), snap)
}
