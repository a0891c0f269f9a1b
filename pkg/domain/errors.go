package domain

import "errors"

// ErrMissingRestartScene is returned when a scene has no restart target.
var ErrMissingRestartScene = errors.New("restart scene is required")

// ErrNegativeDwell is returned when a scene is configured with a negative dwell time.
var ErrNegativeDwell = errors.New("dwell seconds must not be negative")

// ErrInvalidDwell is returned when the dwell time is NaN or infinite.
var ErrInvalidDwell = errors.New("dwell seconds must be a finite number")

// ErrSceneNotFound is returned when a catalog has no scene with the requested name.
var ErrSceneNotFound = errors.New("scene not found")

// ErrUnresolvedScene is returned when a next or restart reference points to a missing scene.
var ErrUnresolvedScene = errors.New("unresolved scene reference")

// ErrNoEntryScene is returned when the entry scene cannot be determined.
var ErrNoEntryScene = errors.New("no entry scene")

// ErrAlreadyStarted is returned when Start is called twice on the same controller.
var ErrAlreadyStarted = errors.New("flow already started")
