package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventSceneEnter   EventType = "scene_enter"
	EventPhaseEnter   EventType = "phase_enter"
	EventPhaseLeave   EventType = "phase_leave"
	EventLoadRequest  EventType = "load_request"
	EventResetRequest EventType = "reset_request"
	EventEnded        EventType = "experience_ended"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Scene     string    `json:"scene"`
}

// SceneEvent is emitted when a scene gets a fresh controller.
type SceneEvent struct {
	EventBase
	Config     FlowConfig `json:"config"`
	Activation int        `json:"activation"`
	// Reason is "entry", "next" or "reset".
	Reason string `json:"reason"`
}

// PhaseEvent represents entry or exit from a phase.
type PhaseEvent struct {
	EventBase
	Phase   Phase   `json:"phase"`
	Elapsed float64 `json:"elapsed"`
}

// TransitionEvent is emitted when a scene asks for a scene load (next, reset) or ends.
type TransitionEvent struct {
	EventBase
	// From is the phase the scene was in when the decision was taken.
	From   Phase  `json:"from"`
	Target string `json:"target,omitempty"`
}

// LifecycleHooks defines callbacks for flow observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnSceneEnter func(*SceneEvent)
	OnPhaseEnter func(*PhaseEvent)
	OnPhaseLeave func(*PhaseEvent)
	OnLoad       func(*TransitionEvent)
	OnReset      func(*TransitionEvent)
	OnEnded      func(*TransitionEvent)
}

// MergeHooks combines several hook sets; callbacks run in argument order.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	for _, h := range sets {
		merged.OnSceneEnter = chain(merged.OnSceneEnter, h.OnSceneEnter)
		merged.OnPhaseEnter = chain(merged.OnPhaseEnter, h.OnPhaseEnter)
		merged.OnPhaseLeave = chain(merged.OnPhaseLeave, h.OnPhaseLeave)
		merged.OnLoad = chain(merged.OnLoad, h.OnLoad)
		merged.OnReset = chain(merged.OnReset, h.OnReset)
		merged.OnEnded = chain(merged.OnEnded, h.OnEnded)
	}
	return merged
}

func chain[E any](first, second func(*E)) func(*E) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func(e *E) {
		first(e)
		second(e)
	}
}
