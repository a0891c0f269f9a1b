package observability

import (
	"log/slog"

	"github.com/aretw0/sceneflow/pkg/domain"
)

// AuditHooks logs every scene activation and flow transition.
// Phase changes go to Debug; loads, resets and the end of the experience to Info.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSceneEnter: func(e *domain.SceneEvent) {
			logger.Info("scene_enter",
				"scene", e.Scene,
				"reason", e.Reason,
				"activation", e.Activation,
				"dwell", e.Config.DwellSeconds,
			)
		},
		OnPhaseEnter: func(e *domain.PhaseEvent) {
			logger.Debug("phase_enter", "scene", e.Scene, "phase", e.Phase)
		},
		OnPhaseLeave: func(e *domain.PhaseEvent) {
			logger.Debug("phase_leave", "scene", e.Scene, "phase", e.Phase, "elapsed", e.Elapsed)
		},
		OnLoad: func(e *domain.TransitionEvent) {
			logger.Info("load_request", "scene", e.Scene, "target", e.Target)
		},
		OnReset: func(e *domain.TransitionEvent) {
			logger.Info("reset_request", "scene", e.Scene, "from", e.From, "target", e.Target)
		},
		OnEnded: func(e *domain.TransitionEvent) {
			logger.Info("experience_ended", "scene", e.Scene)
		},
	}
}
