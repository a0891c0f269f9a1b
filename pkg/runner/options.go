package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/sceneflow/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInput configures the button source. Use CombineInputs for several surfaces.
func WithInput(in ports.InputSource) Option {
	return func(r *Runner) {
		r.Input = in
	}
}

// WithPresenter configures the per-tick presenter (e.g. terminal kiosk).
func WithPresenter(p ports.Presenter) Option {
	return func(r *Runner) {
		r.Presenter = p
	}
}

// WithStatusPublisher mirrors the status to an external store.
// interval bounds how often an unchanged phase is republished; 0 keeps the default.
func WithStatusPublisher(p ports.StatusPublisher, interval time.Duration) Option {
	return func(r *Runner) {
		r.Publisher = p
		if interval > 0 {
			r.PublishInterval = interval
		}
	}
}

// WithTickRate sets the frame rate of Run, in ticks per second.
func WithTickRate(hz float64) Option {
	return func(r *Runner) {
		r.TickRate = hz
	}
}

// WithQuit sets a channel that stops Run when closed.
func WithQuit(ch <-chan struct{}) Option {
	return func(r *Runner) {
		r.Quit = ch
	}
}

// WithClock overrides the clock used for frame deltas and publish throttling.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}
