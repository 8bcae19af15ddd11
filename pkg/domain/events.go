package domain

// EventType defines the category of the event.
type EventType string

const (
	EventStep EventType = "step"
	EventStop EventType = "stop"
	EventGrow EventType = "grow"
)

// StepEvent describes one successful transition.
type StepEvent struct {
	Type EventType `json:"type"`
	// Step is the 1-based lifetime index of the transition.
	Step int     `json:"step"`
	Key  RuleKey `json:"key"`
	Rule Rule    `json:"rule"`
	From int     `json:"from"`
	To   int     `json:"to"`
}

// StopEvent describes a step that found no matching rule.
type StopEvent struct {
	Type    EventType `json:"type"`
	Steps   int       `json:"steps"`
	Key     RuleKey   `json:"key"`
	Outcome Outcome   `json:"outcome"`
}

// GrowEvent describes a one-cell tape extension performed by the engine's bounds maintenance.
type GrowEvent struct {
	Type      EventType `json:"type"`
	Direction Shift     `json:"direction"`
	Length    int       `json:"length"`
	Origin    int       `json:"origin"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnStep func(*StepEvent)
	OnStop func(*StopEvent)
	OnGrow func(*GrowEvent)
}

// Merge returns hooks that invoke h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: chain(h.OnStep, other.OnStep),
		OnStop: chain(h.OnStop, other.OnStop),
		OnGrow: chain(h.OnGrow, other.OnGrow),
	}
}

func chain[E any](a, b func(*E)) func(*E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *E) {
		a(e)
		b(e)
	}
}
