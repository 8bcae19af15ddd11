package turing_test

import (
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(read domain.Symbol, state domain.State, write domain.Symbol, shift domain.Shift, next domain.State) domain.Entry {
	return domain.Entry{Key: domain.NewRuleKey(read, state), Rule: domain.NewRule(write, shift, next)}
}

// twoStates has two numbered states plus Halt; rows for state b are arbitrary but defined.
func twoStates() *domain.RuleTable {
	a, b := domain.StateOf(0), domain.StateOf(1)
	return domain.MustRuleTable(
		entry(domain.Zero, a, domain.One, domain.Right, b),
		entry(domain.One, a, domain.One, domain.Right, domain.Halt),
		entry(domain.Zero, b, domain.Zero, domain.Left, a),
		entry(domain.One, b, domain.One, domain.Left, a),
	)
}

func TestFirstStep(t *testing.T) {
	m, err := turing.New(twoStates())
	require.NoError(t, err)

	res := m.Step(1)
	assert.Equal(t, 1, res.Steps)
	assert.True(t, res.Completed())
	assert.Equal(t, domain.One, m.Get(0))
	assert.Equal(t, 1, m.Position())
	assert.Equal(t, domain.StateOf(1), m.State())
}

func TestStepZero(t *testing.T) {
	m, err := turing.New(twoStates())
	require.NoError(t, err)
	before := m.Snapshot()

	res := m.Step(0)
	assert.Equal(t, 0, res.Steps)
	assert.True(t, res.Completed())
	assert.Equal(t, before, m.Snapshot(), "step(0) must not mutate the machine")
}

func TestMissingInitialRule(t *testing.T) {
	table := domain.MustRuleTable(
		entry(domain.One, domain.Initial, domain.One, domain.Right, domain.Halt),
	)

	for _, n := range []int{1, 2, 50} {
		m, err := turing.New(table)
		require.NoError(t, err)

		res := m.Step(n)
		assert.Equal(t, 0, res.Steps)
		assert.True(t, res.Stopped())
		assert.Equal(t, domain.OutcomeStuck, res.Outcome)
		assert.ErrorIs(t, res.Err, domain.ErrNoMatchingRule)
		assert.ErrorIs(t, res.Err, domain.ErrTableGap)
	}

	m, err := turing.New(table)
	require.NoError(t, err)
	err = m.StepOnce()
	var ruleErr *domain.RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, domain.NewRuleKey(domain.Zero, domain.Initial), ruleErr.Key)
}

func TestNew_NilRules(t *testing.T) {
	_, err := turing.New(nil)
	assert.Error(t, err)
}

func TestHistoryReplay(t *testing.T) {
	m, err := turing.New(busyBeaver())
	require.NoError(t, err)
	m.Step(100)

	frames := m.History()
	require.Len(t, frames, 7)
	assert.Equal(t, domain.Zero, frames[0].Get(0))
	assert.Equal(t, domain.One, frames[1].Get(0))

	// The last frame shows the final tape.
	last := frames[len(frames)-1]
	for p := -4; p <= 4; p++ {
		assert.Equal(t, m.Get(p), last.Get(p), "position %d", p)
	}
	assert.Equal(t, m.Tape().Get(-2), domain.One)
}

func TestWithoutHistory(t *testing.T) {
	m, err := turing.New(busyBeaver(), turing.WithoutHistory())
	require.NoError(t, err)
	m.Step(100)

	assert.Len(t, m.History(), 1)
	assert.True(t, m.Snapshot().NoHistory)
	assert.Equal(t, domain.One, m.Get(-2))
}

func TestRestore(t *testing.T) {
	m, err := turing.New(busyBeaver())
	require.NoError(t, err)
	m.Step(3)

	restored, err := turing.Restore(m.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, m.Position(), restored.Position())
	assert.Equal(t, m.State(), restored.State())
	assert.Equal(t, 3, restored.Steps())

	// Both continue identically.
	a, b := m.Step(100), restored.Step(100)
	assert.Equal(t, a, b)
	assert.Equal(t, m.Snapshot(), restored.Snapshot())

	_, err = turing.Restore(nil)
	assert.Error(t, err)
}

func TestNewRandom(t *testing.T) {
	m1, err := turing.NewRandom(4, generator.New(generator.WithSeed(5)))
	require.NoError(t, err)
	m2, err := turing.NewRandom(4, generator.New(generator.WithSeed(5)))
	require.NoError(t, err)

	assert.Equal(t, m1.Rules().Entries(), m2.Rules().Entries())
	assert.Equal(t, m1.Step(50), m2.Step(50))
	assert.Equal(t, m1.History(), m2.History())

	_, err = turing.NewRandom(1, nil)
	assert.Error(t, err)
}

func TestLifecycleHooksMerge(t *testing.T) {
	var order []string
	first := domain.LifecycleHooks{OnStep: func(*domain.StepEvent) { order = append(order, "first") }}
	second := domain.LifecycleHooks{
		OnStep: func(*domain.StepEvent) { order = append(order, "second") },
		OnStop: func(e *domain.StopEvent) { order = append(order, "stop:"+string(e.Outcome)) },
	}

	m, err := turing.New(busyBeaver(), turing.WithLifecycleHooks(first), turing.WithLifecycleHooks(second))
	require.NoError(t, err)
	m.Step(1)
	assert.Equal(t, []string{"first", "second"}, order)

	order = nil
	m.Step(10)
	assert.Len(t, order, 11)
	assert.Equal(t, "stop:halted", order[len(order)-1])
}
