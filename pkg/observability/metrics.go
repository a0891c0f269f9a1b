package observability

import (
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of an installation.
// Counters are fed by Hooks; the opacity and volume gauges by Present.
type Metrics struct {
	PhaseTransitions *prometheus.CounterVec
	SceneLoads       *prometheus.CounterVec
	Resets           *prometheus.CounterVec
	ExperienceEnded  *prometheus.CounterVec
	Opacity          prometheus.Gauge
	Volume           prometheus.Gauge
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		PhaseTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sceneflow_phase_transitions_total",
				Help: "Total number of phases entered",
			},
			[]string{"scene", "phase"},
		),
		SceneLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sceneflow_scene_loads_total",
				Help: "Total number of scene activations",
			},
			[]string{"scene", "reason"},
		),
		Resets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sceneflow_resets_total",
				Help: "Total number of reset requests, by the phase they interrupted",
			},
			[]string{"scene", "phase"},
		),
		ExperienceEnded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sceneflow_experience_ended_total",
				Help: "Total number of experiences that reached their terminal scene",
			},
			[]string{"scene"},
		),
		Opacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sceneflow_opacity",
			Help: "Current opacity of the fade overlay (0 clear, 1 black)",
		}),
		Volume: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sceneflow_volume",
			Help: "Current background music volume",
		}),
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.PhaseTransitions, m.SceneLoads, m.Resets, m.ExperienceEnded, m.Opacity, m.Volume,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Hooks returns lifecycle hooks that record transitions.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSceneEnter: func(e *domain.SceneEvent) {
			m.SceneLoads.WithLabelValues(e.Scene, e.Reason).Inc()
		},
		OnPhaseEnter: func(e *domain.PhaseEvent) {
			m.PhaseTransitions.WithLabelValues(e.Scene, string(e.Phase)).Inc()
		},
		OnReset: func(e *domain.TransitionEvent) {
			m.Resets.WithLabelValues(e.Scene, string(e.From)).Inc()
		},
		OnEnded: func(e *domain.TransitionEvent) {
			m.ExperienceEnded.WithLabelValues(e.Scene).Inc()
		},
	}
}

// Present implements ports.Presenter by mirroring the outputs into gauges.
func (m *Metrics) Present(s domain.Snapshot) {
	m.Opacity.Set(s.Opacity)
	m.Volume.Set(s.Volume)
}
