package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Builder collects rules and compiles them into a RuleTable.
type Builder struct {
	order []domain.RuleKey
	rules map[domain.RuleKey]*RuleBuilder
}

// New creates a new rule table builder.
func New() *Builder {
	return &Builder{
		rules: make(map[domain.RuleKey]*RuleBuilder),
	}
}

// When starts the rule for the given symbol and state.
// If a rule for that key already exists, it returns the existing builder.
func (b *Builder) When(symbol domain.Symbol, state domain.State) *RuleBuilder {
	key := domain.NewRuleKey(symbol, state)
	if rb, ok := b.rules[key]; ok {
		return rb
	}
	rb := &RuleBuilder{
		key:  key,
		rule: domain.Rule{Symbol: symbol},
	}
	b.order = append(b.order, key)
	b.rules[key] = rb
	return rb
}

// Build compiles the rules into a table, in the order they were first declared.
// Every rule needs a shift and a next state; the written symbol defaults to the one read.
func (b *Builder) Build() (*domain.RuleTable, error) {
	entries := make([]domain.Entry, 0, len(b.order))
	var errs []error
	for _, key := range b.order {
		rb := b.rules[key]
		if err := rb.check(); err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, domain.Entry{Key: key, Rule: rb.rule})
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to build rule table: %w", errors.Join(errs...))
	}

	table, err := domain.NewRuleTable(entries...)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule table: %w", err)
	}
	return table, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *domain.RuleTable {
	table, err := b.Build()
	if err != nil {
		panic(err)
	}
	return table
}
