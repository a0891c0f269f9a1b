package ports

import (
	"context"

	"github.com/aretw0/sceneflow/pkg/domain"
)

// OpacityOutput receives the overlay opacity in [0, 1], 1 being fully opaque (black).
type OpacityOutput interface {
	SetOpacity(value float64)
}

// VolumeOutput controls the volume of the scene's music.
// Volume is read once when the fade-out starts to find the crossfade origin.
type VolumeOutput interface {
	SetVolume(value float64)
	Volume() float64
}

// Presenter is called by the host loop after every tick.
type Presenter interface {
	Present(snapshot domain.Snapshot)
}

// StatusPublisher mirrors snapshots to an external system for operators.
type StatusPublisher interface {
	Publish(ctx context.Context, snapshot domain.Snapshot) error
}
