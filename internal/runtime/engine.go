package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
)

// Engine is the core Turing machine runner.
// It owns its rule table, tape, head position and state, and is not safe for concurrent use.
type Engine struct {
	rules    *domain.RuleTable
	tape     *tape.Tape
	position int
	state    domain.State
	steps    int

	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a structured logger. A nil logger keeps the no-op default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTape replaces the fresh blank tape.
func WithTape(t *tape.Tape) EngineOption {
	return func(e *Engine) {
		if t != nil {
			e.tape = t
		}
	}
}

// WithHead places the head and sets the current state, used when resuming a persisted machine.
func WithHead(position int, state domain.State, steps int) EngineOption {
	return func(e *Engine) {
		e.position = position
		e.state = state
		e.steps = steps
	}
}

// NewEngine creates a machine at position 0 in the initial state on a blank tape.
// The table is used as given; the engine never checks it for completeness.
func NewEngine(rules *domain.RuleTable, opts ...EngineOption) *Engine {
	e := &Engine{
		rules:  rules,
		state:  domain.Initial,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tape == nil {
		e.tape = tape.New()
	}
	return e
}

// Lookup resolves the rule for symbol in the current state.
func (e *Engine) Lookup(symbol domain.Symbol) (domain.Rule, domain.LookupResult) {
	return e.rules.Find(domain.NewRuleKey(symbol, e.state))
}

// StepOnce executes a single transition.
// It returns a *domain.RuleError (matching domain.ErrNoMatchingRule) when no rule applies;
// in that case nothing is mutated.
func (e *Engine) StepOnce() error {
	symbol := e.tape.Get(e.position)
	key := domain.NewRuleKey(symbol, e.state)

	rule, res := e.rules.Find(key)
	if res != domain.LookupMatched {
		return &domain.RuleError{Key: key, Result: res}
	}

	from := e.position
	e.tape.Set(e.position, rule.Symbol)
	e.position += rule.Shift.Delta()
	e.state = rule.State
	e.steps++

	e.ensureBounds(rule.Shift)

	if e.hooks.OnStep != nil {
		e.hooks.OnStep(&domain.StepEvent{
			Type: domain.EventStep,
			Step: e.steps,
			Key:  key,
			Rule: rule,
			From: from,
			To:   e.position,
		})
	}
	return nil
}

// Step executes up to n transitions, stopping at the first failure.
// n <= 0 is a no-op that reports completion.
func (e *Engine) Step(n int) domain.StepResult {
	result := domain.StepResult{Requested: max(n, 0), Outcome: domain.OutcomeCompleted}

	for result.Steps < n {
		err := e.StepOnce()
		if err == nil {
			result.Steps++
			continue
		}

		result.Err = err
		result.Outcome = domain.OutcomeStuck
		key := domain.NewRuleKey(e.tape.Get(e.position), e.state)
		if re, ok := err.(*domain.RuleError); ok {
			result.Outcome = domain.OutcomeOf(re.Result)
			key = re.Key
		}

		e.logger.Debug("Run stopped early",
			"steps", result.Steps,
			"requested", n,
			"outcome", result.Outcome,
			"key", key.String(),
		)
		if e.hooks.OnStop != nil {
			e.hooks.OnStop(&domain.StopEvent{
				Type:    domain.EventStop,
				Steps:   result.Steps,
				Key:     key,
				Outcome: result.Outcome,
			})
		}
		break
	}

	if result.Completed() {
		e.logger.Debug("Run completed", "steps", result.Steps, "state", e.state.String(), "position", e.position)
	}
	return result
}

// ensureBounds keeps the head inside the materialized tape, growing one cell in the direction of travel.
func (e *Engine) ensureBounds(direction domain.Shift) {
	if e.tape.Contains(e.position) {
		return
	}
	e.tape.Extend(direction)
	if e.hooks.OnGrow != nil {
		e.hooks.OnGrow(&domain.GrowEvent{
			Type:      domain.EventGrow,
			Direction: direction,
			Length:    e.tape.Len(),
			Origin:    e.tape.Origin(),
		})
	}
}

// Position is the logical head position.
func (e *Engine) Position() int {
	return e.position
}

// State is the current control state.
func (e *Engine) State() domain.State {
	return e.state
}

// Steps is the number of successful transitions over the engine's lifetime.
func (e *Engine) Steps() int {
	return e.steps
}

// Halted reports whether the machine reached the Halt state.
func (e *Engine) Halted() bool {
	return e.state.IsHalt()
}

// Tape exposes the tape for reading. Callers must not write to it.
func (e *Engine) Tape() *tape.Tape {
	return e.tape
}

// Rules returns the rule table.
func (e *Engine) Rules() *domain.RuleTable {
	return e.rules
}

// Snapshot captures the full machine state for persistence.
func (e *Engine) Snapshot() *domain.MachineSnapshot {
	snap := &domain.MachineSnapshot{
		Rules:     e.rules.Entries(),
		Tape:      e.tape.Current(),
		Position:  e.position,
		State:     e.state,
		Steps:     e.steps,
		Writes:    e.tape.Writes(),
		NoHistory: !e.tape.RetainsHistory(),
	}
	if e.tape.RetainsHistory() {
		snap.History = e.tape.History()
	}
	return snap
}

// Restore rebuilds an engine from a snapshot.
func Restore(snap *domain.MachineSnapshot, opts ...EngineOption) (*Engine, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}
	rules, err := domain.NewRuleTable(snap.Rules...)
	if err != nil {
		return nil, fmt.Errorf("invalid rule table in snapshot: %w", err)
	}

	var tapeOpts []tape.Option
	if snap.NoHistory {
		tapeOpts = append(tapeOpts, tape.WithoutHistory())
	}
	t := tape.Restore(snap.Tape, snap.History, snap.Writes, tapeOpts...)

	opts = append([]EngineOption{WithTape(t), WithHead(snap.Position, snap.State, snap.Steps)}, opts...)
	return NewEngine(rules, opts...), nil
}
