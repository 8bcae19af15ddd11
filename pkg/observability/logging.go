package observability

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// LoggingHooks logs every transition at debug level and every early stop at info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			logger.Debug("step",
				"step", e.Step,
				"key", e.Key.String(),
				"rule", e.Rule.String(),
				"from", e.From,
				"to", e.To,
			)
		},
		OnStop: func(e *domain.StopEvent) {
			logger.Info("stop",
				"steps", e.Steps,
				"key", e.Key.String(),
				"outcome", e.Outcome,
			)
		},
		OnGrow: func(e *domain.GrowEvent) {
			logger.Debug("grow",
				"direction", e.Direction.String(),
				"length", e.Length,
				"origin", e.Origin,
			)
		},
	}
}
