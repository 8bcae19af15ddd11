package domain

import "fmt"

// Outcome tags how a bounded run ended.
type Outcome string

const (
	// OutcomeCompleted means every requested step was executed.
	OutcomeCompleted Outcome = "completed"
	// OutcomeHalted means the run stopped early because the machine is in the Halt state.
	OutcomeHalted Outcome = "halted"
	// OutcomeStuck means the run stopped early on a key the table does not define.
	OutcomeStuck Outcome = "stuck"
)

// StepResult reports a bounded run: how many steps succeeded and why it stopped.
type StepResult struct {
	Requested int     `json:"requested"`
	Steps     int     `json:"steps"`
	Outcome   Outcome `json:"outcome"`

	// Err is the failure that stopped the run early, nil when completed.
	Err error `json:"-"`
}

// Completed reports whether all requested steps ran.
func (r StepResult) Completed() bool {
	return r.Outcome == OutcomeCompleted
}

// Stopped reports whether the run was cut short, either by Halt or by a table gap.
func (r StepResult) Stopped() bool {
	return !r.Completed()
}

func (r StepResult) String() string {
	if r.Completed() {
		return fmt.Sprintf("completed %d steps", r.Steps)
	}
	return fmt.Sprintf("stopped early after %d of %d steps (%s)", r.Steps, r.Requested, r.Outcome)
}

// OutcomeOf maps a lookup failure onto the outcome of the run it interrupted.
func OutcomeOf(result LookupResult) Outcome {
	switch result {
	case LookupHalted:
		return OutcomeHalted
	case LookupGap:
		return OutcomeStuck
	default:
		return OutcomeCompleted
	}
}
