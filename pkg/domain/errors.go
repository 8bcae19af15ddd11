package domain

import (
	"errors"
	"fmt"
)

// ErrNoMatchingRule is returned when a step cannot find a rule for the current (symbol, state) pair.
// Both ErrHalted and ErrTableGap failures match it with errors.Is.
var ErrNoMatchingRule = errors.New("no matching rule")

// ErrHalted is returned when a step is attempted while the machine is in the Halt state.
var ErrHalted = errors.New("machine halted")

// ErrTableGap is returned when a non-halting (symbol, state) pair has no rule in the table.
var ErrTableGap = errors.New("rule table gap")

// ErrDuplicateRule is returned when a rule table defines the same key twice.
var ErrDuplicateRule = errors.New("duplicate rule key")

// ErrInvalidValue is returned when a symbol, shift or state cannot be parsed.
var ErrInvalidValue = errors.New("invalid value")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// RuleError describes a failed rule lookup.
type RuleError struct {
	Key    RuleKey
	Result LookupResult
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("no matching rule for %s: %s", e.Key, e.Result)
}

// Is lets callers match either the umbrella ErrNoMatchingRule or the specific cause.
func (e *RuleError) Is(target error) bool {
	switch target {
	case ErrNoMatchingRule:
		return true
	case ErrHalted:
		return e.Result == LookupHalted
	case ErrTableGap:
		return e.Result == LookupGap
	}
	return false
}
