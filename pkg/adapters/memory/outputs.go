package memory

import "sync"

// Outputs records every opacity and volume write.
// It implements ports.OpacityOutput and ports.VolumeOutput.
type Outputs struct {
	mu      sync.Mutex
	opacity float64
	volume  float64

	OpacityWrites []float64
	VolumeWrites  []float64
}

// NewOutputs creates sinks with the given initial volume.
func NewOutputs(volume float64) *Outputs {
	return &Outputs{volume: volume}
}

func (o *Outputs) SetOpacity(v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opacity = v
	o.OpacityWrites = append(o.OpacityWrites, v)
}

func (o *Outputs) SetVolume(v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.volume = v
	o.VolumeWrites = append(o.VolumeWrites, v)
}

// Opacity returns the last opacity written.
func (o *Outputs) Opacity() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opacity
}

// Volume returns the current volume.
func (o *Outputs) Volume() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.volume
}

// Writes returns the number of opacity and volume writes so far.
func (o *Outputs) Writes() (opacity, volume int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.OpacityWrites), len(o.VolumeWrites)
}
