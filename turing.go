package turing

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/generator"
	"github.com/aretw0/turing/pkg/tape"
)

// Engine is the high-level entry point for the Turing library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	history bool
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
// Calling it more than once merges the hooks in order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithoutHistory disables tape history retention for long or memory-constrained runs.
func WithoutHistory() Option {
	return func(e *Engine) {
		e.history = false
	}
}

// WithName labels the machine in logs.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

func newEngine(opts []Option) *Engine {
	eng := &Engine{history: true}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("machine", eng.Name)
	}
	return eng
}

func (e *Engine) runtimeOptions() []runtime.EngineOption {
	return []runtime.EngineOption{
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithLogger(e.logger),
	}
}

// New creates a machine for the given rule table on a fresh blank tape,
// at position 0 in the initial state.
func New(rules *domain.RuleTable, opts ...Option) (*Engine, error) {
	if rules == nil {
		return nil, fmt.Errorf("rule table is required")
	}
	eng := newEngine(opts)

	var tapeOpts []tape.Option
	if !eng.history {
		tapeOpts = append(tapeOpts, tape.WithoutHistory())
	}
	runtimeOpts := append(eng.runtimeOptions(), runtime.WithTape(tape.New(tapeOpts...)))
	eng.runtime = runtime.NewEngine(rules, runtimeOpts...)

	eng.logger.Debug("Machine created", "rules", rules.Len(), "states", rules.StateCount())
	return eng, nil
}

// NewRandom creates a machine with a random rule table over n states (Halt included).
func NewRandom(n int, gen *generator.Generator, opts ...Option) (*Engine, error) {
	if gen == nil {
		gen = generator.New()
	}
	rules, err := gen.Rules(n)
	if err != nil {
		return nil, fmt.Errorf("failed to generate rules: %w", err)
	}
	return New(rules, opts...)
}

// Restore resumes a machine from a persisted snapshot.
// History retention follows the snapshot, not the options.
func Restore(snap *domain.MachineSnapshot, opts ...Option) (*Engine, error) {
	eng := newEngine(opts)
	rt, err := runtime.Restore(snap, eng.runtimeOptions()...)
	if err != nil {
		return nil, err
	}
	eng.runtime = rt
	eng.history = !snap.NoHistory
	return eng, nil
}

// StepOnce executes a single transition. The error matches domain.ErrNoMatchingRule
// when no rule applies, and further domain.ErrHalted or domain.ErrTableGap.
func (e *Engine) StepOnce() error {
	return e.runtime.StepOnce()
}

// Step executes up to n transitions and reports how the run ended.
func (e *Engine) Step(n int) domain.StepResult {
	return e.runtime.Step(n)
}

// Get reads the tape at a logical position.
func (e *Engine) Get(position int) domain.Symbol {
	return e.runtime.Tape().Get(position)
}

// History returns the tape frames recorded so far, oldest first.
func (e *Engine) History() []domain.Frame {
	return e.runtime.Tape().History()
}

// Tape returns a frame of the live tape.
func (e *Engine) Tape() domain.Frame {
	return e.runtime.Tape().Current()
}

// Rules returns the machine's rule table.
func (e *Engine) Rules() *domain.RuleTable {
	return e.runtime.Rules()
}

// Position is the logical head position.
func (e *Engine) Position() int {
	return e.runtime.Position()
}

// State is the current control state.
func (e *Engine) State() domain.State {
	return e.runtime.State()
}

// Steps is the number of successful transitions since the machine was created.
func (e *Engine) Steps() int {
	return e.runtime.Steps()
}

// Halted reports whether the machine reached the Halt state.
func (e *Engine) Halted() bool {
	return e.runtime.Halted()
}

// Snapshot captures the machine for persistence.
func (e *Engine) Snapshot() *domain.MachineSnapshot {
	return e.runtime.Snapshot()
}
