package dsl

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// RuleBuilder provides a fluent API for configuring one rule.
type RuleBuilder struct {
	key      domain.RuleKey
	rule     domain.Rule
	hasShift bool
	hasState bool
}

// Write sets the symbol written under the head.
func (r *RuleBuilder) Write(symbol domain.Symbol) *RuleBuilder {
	r.rule.Symbol = symbol
	return r
}

// Move sets the head shift.
func (r *RuleBuilder) Move(shift domain.Shift) *RuleBuilder {
	r.rule.Shift = shift
	r.hasShift = true
	return r
}

// Right is shorthand for Move(domain.Right).
func (r *RuleBuilder) Right() *RuleBuilder {
	return r.Move(domain.Right)
}

// Left is shorthand for Move(domain.Left).
func (r *RuleBuilder) Left() *RuleBuilder {
	return r.Move(domain.Left)
}

// Go sets the next state.
func (r *RuleBuilder) Go(state domain.State) *RuleBuilder {
	r.rule.State = state
	r.hasState = true
	return r
}

// Halt is shorthand for Go(domain.Halt).
func (r *RuleBuilder) Halt() *RuleBuilder {
	return r.Go(domain.Halt)
}

func (r *RuleBuilder) check() error {
	switch {
	case !r.hasShift:
		return fmt.Errorf("%w: rule %s has no shift", domain.ErrInvalidValue, r.key)
	case !r.hasState:
		return fmt.Errorf("%w: rule %s has no next state", domain.ErrInvalidValue, r.key)
	}
	return nil
}
