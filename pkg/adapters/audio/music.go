// Package audio plays the background music of each scene through beep and
// exposes its volume to the fade-out crossfade.
package audio

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// DefaultSampleRate is the output rate of the speaker.
const DefaultSampleRate = beep.SampleRate(44100)

// Music implements ports.VolumeOutput over a beep mixer.
//
// Each scene activation restarts the music: the previous track is stopped, the
// scene's track (if any) loops, and the volume returns to 1. The fade-out
// crossfade then lowers it through SetVolume.
type Music struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	mixer      *beep.Mixer
	volume     *effects.Volume
	level      float64

	current *beep.Ctrl
	file    beep.StreamSeekCloser

	lock, unlock func()
	logger       *slog.Logger
	started      bool
}

// Option configures Music.
type Option func(*Music)

// WithSampleRate sets the output rate. Tracks with another rate are resampled.
func WithSampleRate(sr beep.SampleRate) Option {
	return func(m *Music) {
		m.sampleRate = sr
	}
}

// WithLogger sets the logger used for playback failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Music) {
		m.logger = logger
	}
}

// WithLocker replaces speaker.Lock/Unlock, e.g. when the streamer is consumed by something other than the speaker.
func WithLocker(lock, unlock func()) Option {
	return func(m *Music) {
		m.lock = lock
		m.unlock = unlock
	}
}

// New creates a silent mixer at volume 1. Call Start to send it to the speaker.
func New(opts ...Option) *Music {
	m := &Music{
		sampleRate: DefaultSampleRate,
		mixer:      &beep.Mixer{},
		level:      1,
		lock:       speaker.Lock,
		unlock:     speaker.Unlock,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.volume = newVolume(m.mixer, m.level)
	return m
}

// Start initializes the speaker and plays the mixer.
func (m *Music) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil
	}
	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("audio init failed: %w", err)
	}
	speaker.Play(m.volume)
	m.started = true
	return nil
}

// Close stops the music and releases the speaker.
func (m *Music) Close() {
	m.Stop()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		speaker.Close()
		m.started = false
	}
}

// Streamer is the output of the mixer after the volume effect.
func (m *Music) Streamer() beep.Streamer {
	return m.volume
}

// SetVolume implements ports.VolumeOutput. v is clamped to [0,1].
func (m *Music) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.level = domain.Clamp01(v)
	m.lock()
	applyVolume(m.volume, m.level)
	m.unlock()
}

// Volume implements ports.VolumeOutput.
func (m *Music) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

// Play replaces the current track with the WAV file at path, looped, at volume 1.
func (m *Music) Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open music: %w", err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	var s beep.Streamer = beep.Loop(-1, streamer)
	if format.SampleRate != m.sampleRate {
		s = beep.Resample(4, format.SampleRate, m.sampleRate, s)
	}

	m.replace(&beep.Ctrl{Streamer: s}, streamer)
	return nil
}

// Stop silences the current track and restores volume 1 for the next one.
func (m *Music) Stop() {
	m.replace(nil, nil)
}

func (m *Music) replace(ctrl *beep.Ctrl, file beep.StreamSeekCloser) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lock()
	if m.current != nil {
		m.current.Paused = true
	}
	m.mixer.Clear()
	if ctrl != nil {
		m.mixer.Add(ctrl)
	}
	m.level = 1
	applyVolume(m.volume, m.level)
	m.unlock()

	if m.file != nil {
		m.file.Close()
	}
	m.current = ctrl
	m.file = file
}

// Hooks restarts the music on every scene activation.
func (m *Music) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSceneEnter: func(e *domain.SceneEvent) {
			if e.Config.Music == "" {
				m.Stop()
				return
			}
			if err := m.Play(e.Config.Music); err != nil {
				m.logger.Error("music playback failed", "scene", e.Scene, "err", err)
				m.Stop()
			}
		},
	}
}

// newVolume creates a volume effect at a linear level.
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, level float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	applyVolume(v, level)
	return v
}

func applyVolume(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(level)
	v.Silent = false
}
