package domain

// OutcomeKind tells the host what a tick decided.
type OutcomeKind string

const (
	OutcomeNone  OutcomeKind = "none"
	OutcomeLoad  OutcomeKind = "load"  // Fade-out finished, load Scene
	OutcomeReset OutcomeKind = "reset" // Reset pressed, load Scene unconditionally
	OutcomeEnded OutcomeKind = "ended" // Terminal scene finished its fade-out
)

// Outcome is the result of a single tick.
type Outcome struct {
	Kind  OutcomeKind `json:"kind"`
	Scene string      `json:"scene,omitempty"`
}

// None is the outcome of a tick that needs no action from the host.
var None = Outcome{Kind: OutcomeNone}

// RequestsLoad reports whether the host must load Scene.
func (o Outcome) RequestsLoad() bool {
	return o.Kind == OutcomeLoad || o.Kind == OutcomeReset
}
