package dsl

import (
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BusyBeaver(t *testing.T) {
	a, b := domain.StateOf(0), domain.StateOf(1)

	bld := New()
	bld.When(domain.Zero, a).Write(domain.One).Right().Go(b)
	bld.When(domain.One, a).Write(domain.One).Left().Go(b)
	bld.When(domain.Zero, b).Write(domain.One).Left().Go(a)
	bld.When(domain.One, b).Write(domain.One).Right().Halt()

	rules, err := bld.Build()
	require.NoError(t, err)

	require.Equal(t, 4, rules.Len())
	entries := rules.Entries()
	assert.Equal(t, domain.NewRuleKey(domain.Zero, a), entries[0].Key, "declaration order is kept")
	assert.Equal(t, "1RH", entries[3].Rule.String())

	rule, ok := rules.Get(domain.NewRuleKey(domain.One, a))
	require.True(t, ok)
	assert.Equal(t, domain.NewRule(domain.One, domain.Left, b), rule)
}

func TestBuilder_WhenReturnsExisting(t *testing.T) {
	bld := New()
	first := bld.When(domain.Zero, domain.Initial).Right()
	second := bld.When(domain.Zero, domain.Initial)
	assert.Same(t, first, second)

	second.Write(domain.One).Halt()

	rules, err := bld.Build()
	require.NoError(t, err)
	require.Equal(t, 1, rules.Len())
	assert.Equal(t, "1RH", rules.Entries()[0].Rule.String())
}

func TestBuilder_WriteDefaultsToReadSymbol(t *testing.T) {
	bld := New()
	bld.When(domain.One, domain.Initial).Left().Go(domain.Initial)

	rules := bld.MustBuild()
	assert.Equal(t, domain.One, rules.Entries()[0].Rule.Symbol)
}

func TestBuilder_Incomplete(t *testing.T) {
	bld := New()
	bld.When(domain.Zero, domain.Initial).Write(domain.One).Go(domain.Halt)
	bld.When(domain.One, domain.Initial).Right()

	_, err := bld.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
	assert.Contains(t, err.Error(), "0a has no shift")
	assert.Contains(t, err.Error(), "1a has no next state")

	assert.Panics(t, func() { bld.MustBuild() })
}

func TestBuilder_Empty(t *testing.T) {
	rules, err := New().Build()
	require.NoError(t, err)
	assert.Equal(t, 0, rules.Len())
}
