package runtime

import (
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
)

// Controller is the flow state machine of a single scene activation.
//
// It is driven by the host calling Tick once per frame. All waits are expressed
// as phase + elapsed time so a Tick never blocks. A Controller is not safe for
// concurrent use; the host owns it from a single loop.
type Controller struct {
	cfg   domain.FlowConfig
	state domain.FlowState

	opacity     float64
	volume      float64
	startVolume float64

	opacityOut ports.OpacityOutput
	volumeOut  ports.VolumeOutput

	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	now        func() time.Time
	activation int

	started bool
	result  domain.Outcome
	done    chan struct{}
	closed  bool
}

// Option defines a functional option for configuring the Controller.
type Option func(*Controller)

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithOpacityOutput binds the overlay sink. Without it opacity is only tracked internally.
func WithOpacityOutput(out ports.OpacityOutput) Option {
	return func(c *Controller) {
		c.opacityOut = out
	}
}

// WithVolumeOutput binds the music volume sink. Without it the crossfade only affects opacity.
func WithVolumeOutput(out ports.VolumeOutput) Option {
	return func(c *Controller) {
		c.volumeOut = out
	}
}

// WithActivation tags the controller with the host's activation counter.
func WithActivation(n int) Option {
	return func(c *Controller) {
		c.activation = n
	}
}

// WithClock overrides the clock used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController validates cfg and returns a controller that has not started yet.
func NewController(cfg domain.FlowConfig, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:    cfg,
		state:  domain.NewFlowState(),
		volume: 1,
		result: domain.None,
		done:   make(chan struct{}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Ensure logger is initialized
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.logger = c.logger.With("scene", cfg.Name)

	return c, nil
}

// Start sets the entry visuals and enters the first phase.
// Entry scenes start clear and skip the fade-in; other scenes start black and fade in.
func (c *Controller) Start() error {
	if c.started {
		return domain.ErrAlreadyStarted
	}
	c.started = true

	if c.cfg.IsEntryScene {
		c.writeOpacity(0)
		c.transition(domain.PhaseWaiting)
	} else {
		c.writeOpacity(1)
		c.transition(domain.PhaseFadingIn)
	}
	return nil
}

// CheckResetAlways reports whether the host must load the restart scene now.
// It holds in every phase, including after the experience ended.
func (c *Controller) CheckResetAlways(in domain.InputSample) bool {
	return in.Reset
}

// Tick advances the flow by dt seconds using the input sampled for this tick.
// Within a tick reset is checked first, then skip, then time is accumulated.
func (c *Controller) Tick(dt float64, in domain.InputSample) domain.Outcome {
	if c.state.Phase.IsFinal() {
		return domain.None
	}
	if c.CheckResetAlways(in) {
		return c.requestReset()
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}

	switch c.state.Phase {
	case domain.PhaseFadingIn:
		c.stepFadeIn(dt)
	case domain.PhaseWaiting:
		return c.stepWait(dt, in)
	case domain.PhaseFadingOut:
		return c.stepFadeOut(dt)
	}
	return domain.None
}

// BeginFadeOut starts the fade-out and audio crossfade.
// It is guarded by a one-shot latch: it returns false and starts nothing when a
// fade-out already ran or the flow is not fading in or waiting.
func (c *Controller) BeginFadeOut() bool {
	if c.state.FadingOut {
		return false
	}
	if c.state.Phase != domain.PhaseFadingIn && c.state.Phase != domain.PhaseWaiting {
		return false
	}
	c.state.FadingOut = true

	c.startVolume = 1
	if c.volumeOut != nil {
		c.startVolume = c.volumeOut.Volume()
	}
	c.transition(domain.PhaseFadingOut)
	return true
}

func (c *Controller) stepFadeIn(dt float64) {
	c.state.Elapsed += dt
	c.writeOpacity(domain.FadeInOpacity(c.state.Elapsed))
	if c.state.Elapsed >= domain.FadeSeconds {
		c.writeOpacity(0)
		c.transition(domain.PhaseWaiting)
	}
}

func (c *Controller) stepWait(dt float64, in domain.InputSample) domain.Outcome {
	if c.state.Elapsed >= c.cfg.DwellSeconds {
		return c.leaveWait(dt)
	}
	if in.Skip {
		c.logger.Info("dwell skipped", "elapsed", c.state.Elapsed)
		return c.leaveWait(dt)
	}
	c.state.Elapsed += dt
	return domain.None
}

// leaveWait starts the fade-out, whose first step consumes the current tick.
func (c *Controller) leaveWait(dt float64) domain.Outcome {
	if !c.BeginFadeOut() {
		return domain.None
	}
	return c.stepFadeOut(dt)
}

func (c *Controller) stepFadeOut(dt float64) domain.Outcome {
	c.state.Elapsed += dt
	c.writeOpacity(domain.FadeOutOpacity(c.state.Elapsed))
	c.writeVolume(domain.FadeOutVolume(c.startVolume, c.state.Elapsed))
	if c.state.Elapsed < domain.FadeSeconds {
		return domain.None
	}

	c.writeOpacity(1)
	if !c.cfg.IsTerminal() {
		return c.requestLoad()
	}
	return c.end()
}

func (c *Controller) requestLoad() domain.Outcome {
	from := c.state.Phase
	c.transition(domain.PhaseLoadRequested)
	c.result = domain.Outcome{Kind: domain.OutcomeLoad, Scene: c.cfg.NextScene}

	c.logger.Info("loading next scene", "next", c.cfg.NextScene)
	if c.hooks.OnLoad != nil {
		c.hooks.OnLoad(c.transitionEvent(domain.EventLoadRequest, from, c.cfg.NextScene))
	}
	c.finish()
	return c.result
}

func (c *Controller) requestReset() domain.Outcome {
	from := c.state.Phase
	c.transition(domain.PhaseResetRequested)
	c.result = domain.Outcome{Kind: domain.OutcomeReset, Scene: c.cfg.RestartScene}

	c.logger.Info("reset requested", "from", from, "restart", c.cfg.RestartScene)
	if c.hooks.OnReset != nil {
		c.hooks.OnReset(c.transitionEvent(domain.EventResetRequest, from, c.cfg.RestartScene))
	}
	c.finish()
	return c.result
}

func (c *Controller) end() domain.Outcome {
	from := c.state.Phase
	c.state.Ended = true
	c.transition(domain.PhaseEnded)
	c.result = domain.Outcome{Kind: domain.OutcomeEnded}

	c.logger.Info("experience ended, waiting for reset")
	if c.hooks.OnEnded != nil {
		c.hooks.OnEnded(c.transitionEvent(domain.EventEnded, from, ""))
	}
	c.finish()
	return c.result
}

func (c *Controller) transition(next domain.Phase) {
	prev := c.state.Phase
	if prev != domain.PhaseIdle && c.hooks.OnPhaseLeave != nil {
		c.hooks.OnPhaseLeave(c.phaseEvent(domain.EventPhaseLeave, prev))
	}

	c.state.Phase = next
	c.state.Elapsed = 0
	c.logger.Debug("phase changed", "from", prev, "to", next)

	if c.hooks.OnPhaseEnter != nil {
		c.hooks.OnPhaseEnter(c.phaseEvent(domain.EventPhaseEnter, next))
	}
}

// finish closes Done. Reset after the experience ended reaches here a second time.
func (c *Controller) finish() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}

func (c *Controller) writeOpacity(v float64) {
	c.opacity = v
	if c.opacityOut != nil {
		c.opacityOut.SetOpacity(v)
	}
}

func (c *Controller) writeVolume(v float64) {
	c.volume = v
	if c.volumeOut != nil {
		c.volumeOut.SetVolume(v)
	}
}

func (c *Controller) phaseEvent(t domain.EventType, p domain.Phase) *domain.PhaseEvent {
	return &domain.PhaseEvent{
		EventBase: domain.EventBase{Timestamp: c.now(), Type: t, Scene: c.cfg.Name},
		Phase:     p,
		Elapsed:   c.state.Elapsed,
	}
}

func (c *Controller) transitionEvent(t domain.EventType, from domain.Phase, target string) *domain.TransitionEvent {
	return &domain.TransitionEvent{
		EventBase: domain.EventBase{Timestamp: c.now(), Type: t, Scene: c.cfg.Name},
		From:      from,
		Target:    target,
	}
}

// Done is closed once the flow has ended or handed control to the loader.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Result is the outcome that closed Done, or domain.None while the flow runs.
func (c *Controller) Result() domain.Outcome {
	return c.result
}

// Config returns the scene configuration.
func (c *Controller) Config() domain.FlowConfig {
	return c.cfg
}

// State returns a copy of the flow state.
func (c *Controller) State() domain.FlowState {
	return c.state
}

// Opacity returns the last opacity written.
func (c *Controller) Opacity() float64 {
	return c.opacity
}

// Volume returns the music volume: the sink's current level when one is bound,
// otherwise the last value the crossfade computed.
func (c *Controller) Volume() float64 {
	if c.volumeOut != nil {
		return c.volumeOut.Volume()
	}
	return c.volume
}

// Snapshot returns a read-only copy of the controller.
func (c *Controller) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Scene:      c.cfg.Name,
		Activation: c.activation,
		State:      c.state,
		Opacity:    c.opacity,
		Volume:     c.Volume(),
	}
}
