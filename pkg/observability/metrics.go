package observability

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "turing"

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	Steps      *prometheus.CounterVec
	Stops      *prometheus.CounterVec
	Growth     *prometheus.CounterVec
	TapeLength prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Steps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Successful transitions, by the rule's written symbol and shift.",
		}, []string{"write", "shift"}),
		Stops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stops_total",
			Help:      "Runs cut short before the requested step count, by outcome.",
		}, []string{"outcome"}),
		Growth: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tape_growth_total",
			Help:      "One-cell tape extensions, by direction.",
		}, []string{"direction"}),
		TapeLength: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tape_length_cells",
			Help:      "Materialized tape length observed after each extension.",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 12),
		}),
	}
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			m.Steps.WithLabelValues(e.Rule.Symbol.String(), e.Rule.Shift.String()).Inc()
		},
		OnStop: func(e *domain.StopEvent) {
			m.Stops.WithLabelValues(string(e.Outcome)).Inc()
		},
		OnGrow: func(e *domain.GrowEvent) {
			m.Growth.WithLabelValues(e.Direction.String()).Inc()
			m.TapeLength.Observe(float64(e.Length))
		},
	}
}
