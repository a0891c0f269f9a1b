package domain

// Phase is the position of a scene in its flow.
type Phase string

const (
	PhaseIdle      Phase = "idle"       // Created, Start not called yet
	PhaseFadingIn  Phase = "fading_in"  // Opacity 1 -> 0
	PhaseWaiting   Phase = "waiting"    // Dwell timer, skip allowed
	PhaseFadingOut Phase = "fading_out" // Opacity 0 -> 1, volume -> 0
	PhaseEnded     Phase = "ended"      // Terminal scene, only reset is answered

	// PhaseLoadRequested and PhaseResetRequested are sink phases: the scene has handed
	// control to the loader and will be discarded.
	PhaseLoadRequested  Phase = "load_requested"
	PhaseResetRequested Phase = "reset_requested"
)

// IsActive reports whether the phase still advances with time.
func (p Phase) IsActive() bool {
	return p == PhaseFadingIn || p == PhaseWaiting || p == PhaseFadingOut
}

// IsFinal reports whether the scene has ceded control to the loader.
func (p Phase) IsFinal() bool {
	return p == PhaseLoadRequested || p == PhaseResetRequested
}

// FlowState is the mutable state of one scene activation.
type FlowState struct {
	Phase Phase `json:"phase"`

	// Elapsed is the time spent in the current phase, in seconds.
	Elapsed float64 `json:"elapsed"`

	// FadingOut latches once the fade-out has started so it cannot start twice.
	FadingOut bool `json:"fading_out"`

	// Ended latches when a terminal scene finishes its fade-out.
	Ended bool `json:"ended"`
}

// NewFlowState creates the state of a scene that has not started yet.
func NewFlowState() FlowState {
	return FlowState{Phase: PhaseIdle}
}

// Snapshot is a read-only copy of a running scene.
type Snapshot struct {
	Scene      string    `json:"scene"`
	Activation int       `json:"activation"`
	State      FlowState `json:"state"`
	Opacity    float64   `json:"opacity"`
	Volume     float64   `json:"volume"`
}
